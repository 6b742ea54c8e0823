package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/store"
)

// runSummary is the wire form of an archived run in CLI output.
type runSummary struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Label     string     `json:"label,omitempty"`
	Stats     plan.Stats `json:"stats"`
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived reconciliation runs",
	}
	cmd.PersistentFlags().StringVar(&db, "db", "docfold.db", "path to the run archive database")

	list := &cobra.Command{
		Use:           "list",
		Short:         "List archived runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			st, err := store.Open(db)
			if err != nil {
				return f.Failure(ExitCommandError, "open archive", err)
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return f.Failure(ExitCommandError, "list runs", err)
			}

			if rootOpts.Format == "json" {
				summaries := make([]runSummary, len(runs))
				for i, r := range runs {
					summaries[i] = runSummary{ID: r.ID, CreatedAt: r.CreatedAt, Label: r.Label, Stats: r.Stats}
				}
				return f.Success(summaries)
			}

			var b strings.Builder
			for _, r := range runs {
				fmt.Fprintf(&b, "%s  %s  %s  %s\n",
					r.ID, r.CreatedAt.Format(time.RFC3339), statsLine(r.Stats), r.Label)
			}
			if len(runs) == 0 {
				b.WriteString("no runs archived\n")
			}
			return f.Success(strings.TrimRight(b.String(), "\n"))
		},
	}
	list.Flags().Int("limit", 20, "maximum number of runs to list (0 = all)")

	show := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show one archived run, including its full plan",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			st, err := store.Open(db)
			if err != nil {
				return f.Failure(ExitCommandError, "open archive", err)
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return f.Failure(ExitFailure, "run not found", err)
			}
			if err != nil {
				return f.Failure(ExitCommandError, "load run", err)
			}

			planData, err := plan.Marshal(run.Plan)
			if err != nil {
				return f.Failure(ExitCommandError, "encode plan", err)
			}
			if rootOpts.Format == "json" {
				return f.Success(map[string]any{
					"id":         run.ID,
					"created_at": run.CreatedAt,
					"label":      run.Label,
					"stats":      run.Stats,
					"plan":       json.RawMessage(planData),
				})
			}
			fmt.Fprintf(f.Writer, "run %s\ncreated %s\nlabel %q\n%s\n",
				run.ID, run.CreatedAt.Format(time.RFC3339), run.Label, statsLine(run.Stats))
			return writeJSON(f, "", planData)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
