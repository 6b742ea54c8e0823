package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/schema"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <doc.json>",
		Short: "Validate a serialized document against the tree schema",
		Long: `Validate that a JSON file is a well-formed serialized document tree.
Checks every node's type tag and field shapes against the embedded schema.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return f.Failure(ExitCommandError, "read input", err)
			}
			if err := schema.ValidateDocument(data); err != nil {
				return f.Failure(ExitFailure, "invalid document", err)
			}
			return f.Success(map[string]any{"valid": true, "file": args[0]})
		},
	}
	return cmd
}
