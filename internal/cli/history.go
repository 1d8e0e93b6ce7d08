package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/store"
)

// historyCommand creates the history command for listing recorded runs.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		db    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs, or the rounds of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if db == "" {
				return errs.New(errs.ErrCodeInvalidPath, "--db is required")
			}
			st, err := store.Open(db)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if len(args) == 0 {
				runs, err := st.Runs(ctx, limit)
				if err != nil {
					return err
				}
				printRuns(runs)
				return nil
			}

			run, err := st.Run(ctx, args[0])
			if err != nil {
				return err
			}
			rounds, err := st.Rounds(ctx, run.ID)
			if err != nil {
				return err
			}
			printRunDetail(run, rounds)
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "sqlite database written by 'run --db'")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")

	return cmd
}

func printRuns(runs []store.Run) {
	if len(runs) == 0 {
		printInfo("No runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %s\n",
			StyleHighlight.Render(r.ID),
			StyleDim.Render(r.CreatedAt.Local().Format(time.DateTime)),
			statusStyle(r.Status).Render(r.Status))
		printDetail("%d racks · %s · %s · %s · seed %d", r.Racks, r.Strategy, r.Model, r.Coverage, r.Seed)
	}
}

func printRunDetail(run store.Run, rounds []store.Round) {
	printKeyValue("Run", run.ID)
	printKeyValue("Created", run.CreatedAt.Local().Format(time.DateTime))
	printKeyValue("Status", statusStyle(run.Status).Render(run.Status))
	printKeyValue("Racks", fmt.Sprint(run.Racks))
	printKeyValue("Strategy", run.Strategy)
	printKeyValue("Model", run.Model)
	printKeyValue("Coverage", run.Coverage)
	printNewline()
	for _, r := range rounds {
		printRoundRow(r.Round, r.Candidates, r.Guards, r.Status, r.Duration, r.CacheHit)
	}
}
