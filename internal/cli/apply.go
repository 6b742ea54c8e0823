package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/reconcile"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "apply <original> <executed> <plan.json>",
		Short: "Apply a previously computed plan",
		Long: `Merge the original and executed documents under a plan produced by
compute. The merged tree keeps original's source locations wherever the
plan kept original content.`,
		Args:          cobra.ExactArgs(3),
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
			planData, err := os.ReadFile(args[2])
			if err != nil {
				return f.Failure(ExitCommandError, "read plan", err)
			}
			p, err := plan.Unmarshal(planData)
			if err != nil {
				return f.Failure(ExitCommandError, "decode plan", err)
			}

			merged := reconcile.Apply(original, executed, p)
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
	return cmd
}
