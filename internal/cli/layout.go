package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rackwatch/pkg/io"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
)

// layoutCommand creates the layout command: place racks only.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Place racks and write the scene snapshot",
		Long: `Place racks and write the scene snapshot.

The snapshot carries the boundary, racks and guarding rules with no guards
selected. Solve it later with 'rackwatch solve'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			defer runner.Close()

			spin := startSpinner(cmd.Context(), os.Stderr, fmt.Sprintf("Placing %d racks...", opts.Racks))
			sc, err := runner.Layout(cmd.Context(), opts)
			if err != nil {
				spin.StopWithError("Layout failed")
				return err
			}
			spin.Stop()

			if err := io.ExportJSON(sc.Snapshot("", 0), output); err != nil {
				return err
			}

			printSuccess("Layout complete")
			printFile(output)
			printStats(sc.Racks.Len(), sc.Grid.Len())
			printNewline()
			printNextStep("Solve", "rackwatch solve "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "scene.json", "output file")
	flags.addLayoutFlags(cmd)

	return cmd
}
