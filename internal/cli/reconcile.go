package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/reconcile"
	"github.com/docfold/docfold/internal/store"
)

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		output   string
		planPath string
		archive  string
		label    string
	)

	cmd := &cobra.Command{
		Use:   "reconcile <original> <executed>",
		Short: "Compute and apply in one step",
		Long: `Compute a plan between the two documents and immediately apply it,
writing the merged tree. Optionally archive the plan to a run database
for later inspection with the runs command.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			original, err := loadDocument(args[0])
			if err != nil {
				return f.Failure(ExitCommandError, "load original", err)
			}
			executed, err := loadDocument(args[1])
			if err != nil {
				return f.Failure(ExitCommandError, "load executed", err)
			}

			merged, p := reconcile.Reconcile(original, executed, reconcile.WithLogger(rootOpts.Logger()))
			f.VerboseLog("plan: %s", statsLine(p.Stats))

			if planPath != "" {
				planData, err := plan.Marshal(p)
				if err != nil {
					return f.Failure(ExitCommandError, "encode plan", err)
				}
				if err := writeJSON(f, planPath, planData); err != nil {
					return f.Failure(ExitCommandError, "write plan", err)
				}
			}

			if archive != "" {
				st, err := store.Open(archive)
				if err != nil {
					return f.Failure(ExitCommandError, "open archive", err)
				}
				defer st.Close()
				run, err := st.SaveRun(cmd.Context(), label, p)
				if err != nil {
					return f.Failure(ExitCommandError, "archive run", err)
				}
				f.VerboseLog("archived run %s", run.ID)
			}

			data, err := doctree.MarshalDocument(merged)
			if err != nil {
				return f.Failure(ExitCommandError, "encode merged document", err)
			}
			if rootOpts.Format == "json" && output == "" {
				return f.Success(json.RawMessage(data))
			}
			return writeJSON(f, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write merged document JSON to file instead of stdout")
	cmd.Flags().StringVar(&planPath, "plan", "", "also write the computed plan JSON to this file")
	cmd.Flags().StringVar(&archive, "archive", "", "archive the run to this SQLite database")
	cmd.Flags().StringVar(&label, "label", "", "label for the archived run")
	return cmd
}
