package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/reconcile"
)

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compute <original> <executed>",
		Short: "Compute a reconciliation plan between two documents",
		Long: `Compute the plan that aligns every node of the executed document against
the original. Inputs may be Markdown (.md) or serialized tree JSON. The
plan is written as JSON for inspection or later application.`,
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

			p := reconcile.Compute(original, executed, reconcile.WithLogger(rootOpts.Logger()))
			f.VerboseLog("plan: %s", statsLine(p.Stats))

			data, err := plan.Marshal(p)
			if err != nil {
				return f.Failure(ExitCommandError, "encode plan", err)
			}
			if rootOpts.Format == "json" && output == "" {
				return f.Success(json.RawMessage(data))
			}
			return writeJSON(f, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write plan JSON to file instead of stdout")
	return cmd
}

func statsLine(s plan.Stats) string {
	return fmt.Sprintf("kept=%d replaced=%d recursed=%d", s.Kept, s.Replaced, s.Recursed)
}
