package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/markdown"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <file.md>",
		Short: "Parse a Markdown file into a document tree",
		Long: `Parse a Markdown file into the serialized document tree, with source
locations attached to every node the parser can place.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			doc, err := markdown.ParseFile(args[0])
			if err != nil {
				return f.Failure(ExitCommandError, "parse input", err)
			}
			data, err := doctree.MarshalDocument(doc)
			if err != nil {
				return f.Failure(ExitCommandError, "encode document", err)
			}
			f.VerboseLog("parsed %s: %d top-level blocks", args[0], len(doc.Blocks))
			if rootOpts.Format == "json" && output == "" {
				return f.Success(json.RawMessage(data))
			}
			return writeJSON(f, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write document JSON to file instead of stdout")
	return cmd
}
