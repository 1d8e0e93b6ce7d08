package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rackwatch/pkg/config"
	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

// optionFlags holds flag values. Only flags the user sets override the
// defaults and the config file.
type optionFlags struct {
	config string

	// Layout
	racks       int
	epsilon     float64
	strategy    string
	seed        uint64
	maxAttempts int

	// Visibility and solve
	model    string
	coverage string
	delta    float64
	rounds   int
	timeout  time.Duration
	gap      float64
	refresh  bool

	// Render
	formats    string
	grid       bool
	candidates bool
	caption    bool
}

func (f *optionFlags) addLayoutFlags(cmd *cobra.Command) {
	d := pipeline.DefaultOptions()
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML config file")
	cmd.Flags().IntVarP(&f.racks, "racks", "n", d.Racks, "number of racks")
	cmd.Flags().Float64Var(&f.epsilon, "epsilon", d.Epsilon, "minimum clearance between racks and walls")
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", string(d.Strategy),
		"layout strategy: "+strings.Join(strategyNames(), ", "))
	cmd.Flags().Uint64Var(&f.seed, "seed", d.Seed, "random seed")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", d.MaxAttempts, "seed samples per rack before giving up")
	cmd.Flags().StringVarP(&f.model, "model", "m", d.Model.String(), "guarding model: posers, solvers, both")
	cmd.Flags().StringVar(&f.coverage, "coverage", d.Coverage.String(), "coverage mode: complete, delta")
	cmd.Flags().Float64Var(&f.delta, "delta", d.Delta, "tolerated shadow length under delta coverage")
}

func (f *optionFlags) addSolveFlags(cmd *cobra.Command) {
	d := pipeline.DefaultOptions()
	if cmd.Flags().Lookup("config") == nil {
		cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML config file")
	}
	cmd.Flags().IntVarP(&f.rounds, "rounds", "r", d.Rounds, "number of solved refinement rounds")
	cmd.Flags().DurationVar(&f.timeout, "timeout", d.SolveTimeout, "time budget per solve")
	cmd.Flags().Float64Var(&f.gap, "gap", d.Gap, "accepted relative optimality gap")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached solutions")
	cmd.Flags().StringVarP(&f.formats, "format", "f", strings.Join(d.Formats, ","), "output formats: svg, png, json")
	cmd.Flags().BoolVar(&f.grid, "grid", d.DrawGrid, "draw grid lines")
	cmd.Flags().BoolVar(&f.candidates, "candidates", d.DrawCandidates, "draw unselected candidate guards")
	cmd.Flags().BoolVar(&f.caption, "caption", d.Caption, "draw the rack and guard count caption")
}

// options builds pipeline options from defaults, the config file and the
// flags the user changed, in that order.
func (f *optionFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.config != "" {
		if err := config.Load(f.config, &opts); err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	set := flags.Changed
	if set("racks") {
		opts.Racks = f.racks
	}
	if set("epsilon") {
		opts.Epsilon = f.epsilon
	}
	if set("strategy") {
		s, err := layout.ParseStrategy(f.strategy)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "--strategy")
		}
		opts.Strategy = s
	}
	if set("seed") {
		opts.Seed = f.seed
	}
	if set("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if set("model") {
		m, err := visibility.ParseModel(f.model)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "--model")
		}
		opts.Model = m
	}
	if set("coverage") {
		m, err := visibility.ParseMode(f.coverage)
		if err != nil {
			return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "--coverage")
		}
		opts.Coverage = m
	}
	if set("delta") {
		opts.Delta = f.delta
	}
	if set("rounds") {
		opts.Rounds = f.rounds
	}
	if set("timeout") {
		opts.SolveTimeout = f.timeout
	}
	if set("gap") {
		opts.Gap = f.gap
	}
	if set("refresh") {
		opts.Refresh = f.refresh
	}
	if set("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if set("grid") {
		opts.DrawGrid = f.grid
	}
	if set("candidates") {
		opts.DrawCandidates = f.candidates
	}
	if set("caption") {
		opts.Caption = f.caption
	}

	opts.SetDefaults()
	return opts, opts.Validate()
}

func strategyNames() []string {
	names := make([]string, len(layout.Strategies))
	for i, s := range layout.Strategies {
		names[i] = string(s)
	}
	return names
}
