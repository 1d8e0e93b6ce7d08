package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rackwatch/pkg/pipeline"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// runCommand creates the run command: layout plus solved rounds.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags   optionFlags
		backend backendFlags
		out     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lay out racks and solve guard placement over refined grids",
		Long: `Lay out racks and solve guard placement over refined grids.

Each round builds the coverage matrix for the current candidate grid, finds a
minimum guard set and writes data_center<round>.<fmt> into the output
directory. Artifacts of the previous run are moved to <out>/backup first.

Solutions are cached locally, or in redis with --redis-url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runRounds(cmd.Context(), opts, nil, out, backend)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultOutDir, "output directory for round artifacts")
	backend.register(cmd)
	flags.addLayoutFlags(cmd)
	flags.addSolveFlags(cmd)

	return cmd
}

// solveCommand creates the solve command: rounds on a stored scene.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		flags   optionFlags
		backend backendFlags
		out     string
	)

	cmd := &cobra.Command{
		Use:   "solve [scene.json]",
		Short: "Solve guard placement for a stored scene",
		Long: `Solve guard placement for a stored scene.

The scene snapshot (written by 'layout' or by any round of 'run') supplies the
racks, boundary, clearance and guarding rules. Rounds start again from the
coarsest grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			sc, err := pipeline.LoadScene(args[0], opts)
			if err != nil {
				return fmt.Errorf("load scene %s: %w", args[0], err)
			}
			return c.runRounds(cmd.Context(), opts, sc, out, backend)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", defaultOutDir, "output directory for round artifacts")
	backend.register(cmd)
	flags.addSolveFlags(cmd)

	return cmd
}

// runRounds executes the pipeline, writing each round's artifacts as it
// completes.
func (c *CLI) runRounds(ctx context.Context, opts pipeline.Options, sc *scene.Scene, out string, backend backendFlags) error {
	backedUp, err := prepareOutputDir(out)
	if err != nil {
		return err
	}
	if backedUp > 0 {
		c.Logger.Debug("backed up previous artifacts", "files", backedUp, "dir", backupDir)
	}

	runner, err := c.newRunner(ctx, backend)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spin := startSpinner(ctx, os.Stderr, roundMessage(0, opts.Rounds))
	defer spin.Stop()
	opts.OnRound = func(rr *pipeline.RoundResult) error {
		paths, err := writeArtifacts(out, rr, opts.Formats)
		if err != nil {
			return err
		}
		spin.Suspend(func() {
			printRound(rr)
			for _, p := range paths {
				printFile(p)
			}
		})
		if next := rr.Round + 1; next < opts.Rounds {
			spin.SetMessage(roundMessage(next, opts.Rounds))
		}
		return nil
	}

	result, err := runner.Execute(ctx, opts, sc)
	if err != nil {
		spin.StopWithError("Run failed")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	spin.Stop()

	printNewline()
	printSuccess("Solved %d rounds", len(result.Rounds))
	printKeyValue("Racks", fmt.Sprint(result.Scene.Racks.Len()))
	printKeyValue("Guards", fmt.Sprint(len(result.Scene.SelectedGuards())))
	printKeyValue("Output", out)
	prog.done("Run complete")
	return nil
}

func roundMessage(round, total int) string {
	return fmt.Sprintf("Solving round %d/%d...", round+1, total)
}
