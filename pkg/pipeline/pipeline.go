// Package pipeline runs the rack coverage pipeline for rackwatch.
//
// This package implements the complete layout → rounds pipeline used by the
// CLI. Each round builds the coverage matrix for the current grid, solves
// the minimum guard set, renders artifacts and refines the grid for the
// next round.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: place racks with a [layout.Strategy], or load a stored scene
//  2. Solve: evaluate visibility for every rack and candidate and find a
//     minimum cover, reusing cached solutions when the matrix repeats
//  3. Render: produce SVG, PNG and JSON artifacts for the round
//
// Stages 2 and 3 repeat for [Options].Rounds rounds; the grid is refined
// between rounds so candidate counts only grow.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Racks = 12
//	opts.OnRound = func(r *pipeline.RoundResult) error {
//	    fmt.Println(r.Round, len(r.Guards))
//	    return nil
//	}
//	result, err := runner.Execute(ctx, opts, nil)
//
// Run individual stages:
//
//	sc, err := runner.Layout(ctx, opts)
//	round, err := runner.Round(ctx, sc, 0, opts)
//
// [layout.Strategy]: github.com/matzehuels/rackwatch/pkg/layout.Strategy
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rackwatch/pkg/cache"
	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/grid"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/scene"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultEpsilon is the minimum clearance between racks and walls.
	DefaultEpsilon = 3.0

	// DefaultRacks is the number of racks placed by a layout.
	DefaultRacks = 20

	// DefaultStrategy is the default layout strategy.
	DefaultStrategy = layout.GrowOneByOne

	// DefaultDelta is the all-but-delta tolerance.
	DefaultDelta = 10.0

	// DefaultRounds is the number of solved refinement rounds.
	DefaultRounds = 6

	// DefaultSolveTimeout bounds each round's solve.
	DefaultSolveTimeout = 60 * time.Second

	// DefaultGap is the accepted relative optimality gap.
	DefaultGap = 0.05

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxAttempts is the seed-sampling budget per rack.
	DefaultMaxAttempts = 100
)

// DefaultBoundary is the 100×100 logical room.
var DefaultBoundary = [4]float64{0, 0, 100, 100}

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run. Field tags serve
// both JSON and the TOML configuration file.
type Options struct {
	// Layout options
	Boundary    [4]float64      `json:"boundary" toml:"boundary"` // left, top, right, bottom
	Epsilon     float64         `json:"epsilon" toml:"epsilon"`
	Racks       int             `json:"racks" toml:"racks"`
	Strategy    layout.Strategy `json:"strategy" toml:"strategy"`
	Seed        uint64          `json:"seed" toml:"seed"`
	MaxAttempts int             `json:"max_attempts" toml:"max_attempts"`

	// Visibility options
	Model    visibility.Model `json:"guarding_model" toml:"guarding_model"`
	Coverage visibility.Mode  `json:"coverage" toml:"coverage"`
	Delta    float64          `json:"delta" toml:"delta"`

	// Solve options
	Rounds       int           `json:"rounds" toml:"rounds"`
	SolveTimeout time.Duration `json:"solve_timeout" toml:"solve_timeout"`
	Gap          float64       `json:"gap" toml:"gap"`
	Refresh      bool          `json:"refresh,omitempty" toml:"refresh"` // Ignore cached solutions

	// Render options
	Formats        []string `json:"formats,omitempty" toml:"formats"`
	DrawGrid       bool     `json:"draw_grid" toml:"draw_grid"`
	DrawCandidates bool     `json:"draw_candidates" toml:"draw_candidates"`
	Caption        bool     `json:"caption" toml:"caption"`

	// Runtime options (not serialized)
	Logger  *log.Logger              `json:"-" toml:"-"`
	OnRound func(*RoundResult) error `json:"-" toml:"-"`
}

// DefaultOptions returns the options of a standard run. Zero is a
// meaningful value for several fields (gap, delta, seed), so callers start
// from these defaults and override rather than relying on SetDefaults.
func DefaultOptions() Options {
	return Options{
		Boundary:     DefaultBoundary,
		Epsilon:      DefaultEpsilon,
		Racks:        DefaultRacks,
		Strategy:     DefaultStrategy,
		Seed:         DefaultSeed,
		MaxAttempts:  DefaultMaxAttempts,
		Model:        visibility.PosersChoice,
		Coverage:     visibility.Complete,
		Delta:        DefaultDelta,
		Rounds:       DefaultRounds,
		SolveTimeout: DefaultSolveTimeout,
		Gap:          DefaultGap,
		Formats:      []string{FormatSVG, FormatJSON},
		DrawGrid:     true,
		Caption:      true,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the solved scene after the last round.
	Scene *scene.Scene

	// Rounds holds one entry per completed round.
	Rounds []*RoundResult

	// Stats contains timing information.
	Stats Stats
}

// RoundResult is the outcome of one refinement round.
type RoundResult struct {
	Round      int
	Candidates int
	Guards     []grid.Guard
	Status     string
	Bound      int
	Snapshot   scene.Snapshot
	Artifacts  map[string][]byte
	CacheHit   bool
	SolveTime  time.Duration
	RenderTime time.Duration
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	TotalTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills fields whose zero value is never valid.
func (o *Options) SetDefaults() {
	if o.Boundary == [4]float64{} {
		o.Boundary = DefaultBoundary
	}
	if o.Epsilon == 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.Racks == 0 {
		o.Racks = DefaultRacks
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Rounds == 0 {
		o.Rounds = DefaultRounds
	}
	if o.SolveTimeout == 0 {
		o.SolveTimeout = DefaultSolveTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field and returns the first problem as an
// INVALID_CONFIG error.
func (o *Options) Validate() error {
	if b := o.BoundaryRect(); b.Width() <= 0 || b.Height() <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "boundary %v must have positive width and height", o.Boundary)
	}
	if err := errs.ValidatePositive("epsilon", o.Epsilon); err != nil {
		return err
	}
	if err := errs.ValidateCount("racks", o.Racks, 1); err != nil {
		return err
	}
	if _, err := layout.ParseStrategy(string(o.Strategy)); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "strategy")
	}
	if err := errs.ValidateCount("max_attempts", o.MaxAttempts, 1); err != nil {
		return err
	}
	if err := errs.ValidateNonNegative("delta", o.Delta); err != nil {
		return err
	}
	if err := errs.ValidateCount("rounds", o.Rounds, 1); err != nil {
		return err
	}
	if o.SolveTimeout <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "solve_timeout must be positive, got %s", o.SolveTimeout)
	}
	if err := errs.ValidateFraction("gap", o.Gap); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// BoundaryRect returns the boundary as a rectangle. The stored corners are
// (left, top) and (right, bottom).
func (o *Options) BoundaryRect() geom.Rect {
	b := o.Boundary
	return geom.Rect{Left: b[0], Top: b[1], Right: b[2], Bottom: b[3]}
}

// LayoutOptions returns the options for [layout.Generate].
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Boundary:    o.BoundaryRect(),
		Epsilon:     o.Epsilon,
		Count:       o.Racks,
		MaxAttempts: o.MaxAttempts,
		AreaBuffer:  layout.DefaultAreaBuffer,
		Logger:      o.Logger,
	}
}

// VisibilityConfig returns the oracle configuration.
func (o *Options) VisibilityConfig() visibility.Config {
	return visibility.Config{Model: o.Model, Mode: o.Coverage, Delta: o.Delta, Logger: o.Logger}
}

// SolveKeyOpts returns cache key options for solve results.
func (o *Options) SolveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{Gap: o.Gap, TimeLimit: o.SolveTimeout}
}

// DrawOptions returns the scene layers to render.
func (o *Options) DrawOptions() scene.DrawOptions {
	return scene.DrawOptions{Grid: o.DrawGrid, Candidates: o.DrawCandidates}
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("%d racks, %s, %s, %s, %d rounds",
		o.Racks, o.Strategy, o.Model.Label(), o.Coverage.Label(), o.Rounds)
}
