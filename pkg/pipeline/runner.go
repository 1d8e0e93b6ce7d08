package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/rackwatch/pkg/cache"
	"github.com/matzehuels/rackwatch/pkg/cover"
	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/observability"
	"github.com/matzehuels/rackwatch/pkg/scene"
	"github.com/matzehuels/rackwatch/pkg/store"
)

// Runner encapsulates pipeline execution with caching and run history.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can use the same Runner with
// different scenes.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	History *store.Store // Optional; nil disables run history
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout validates opts and generates a new scene.
func (r *Runner) Layout(ctx context.Context, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(opts.Strategy), opts.Racks)
	start := time.Now()
	sc, err := GenerateScene(opts)
	hooks.OnLayoutComplete(ctx, string(opts.Strategy), time.Since(start), err)
	return sc, err
}

// Execute runs every round on sc, generating a layout first when sc is
// nil. Rounds run in order with the grid refined between them; the first
// failing round stops the run and its error is returned together with the
// rounds completed so far. A non-nil error from opts.OnRound also stops
// the run.
func (r *Runner) Execute(ctx context.Context, opts Options, sc *scene.Scene) (*Result, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)
	if sc != nil {
		ApplyScene(&opts, sc)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{}
	if sc == nil {
		var err error
		if sc, err = r.Layout(ctx, opts); err != nil {
			return nil, err
		}
		result.Stats.LayoutTime = time.Since(start)
	}
	result.Scene = sc

	runID, err := r.startRun(ctx, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("run started", "run", runID, "config", opts.String())

	for round := 0; round < opts.Rounds; round++ {
		if round > 0 {
			sc.Grid.Refine()
		}
		rr, err := r.round(ctx, sc, runID, round, opts)
		if err == nil {
			err = r.recordRound(ctx, runID, rr)
		}
		if err == nil && opts.OnRound != nil {
			err = opts.OnRound(rr)
		}
		if err != nil {
			r.finishRun(ctx, runID, store.StatusFailed)
			result.Stats.TotalTime = time.Since(start)
			return result, err
		}
		result.Rounds = append(result.Rounds, rr)
	}

	r.finishRun(ctx, runID, store.StatusDone)
	result.Stats.TotalTime = time.Since(start)
	opts.Logger.Info("run complete",
		"run", runID,
		"rounds", len(result.Rounds),
		"guards", len(sc.SelectedGuards()),
		"duration", result.Stats.TotalTime.Round(time.Millisecond))
	return result, nil
}

// Round solves the scene's current grid once without refining it.
func (r *Runner) Round(ctx context.Context, sc *scene.Scene, round int, opts Options) (*RoundResult, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)
	return r.round(ctx, sc, "", round, opts)
}

func (r *Runner) round(ctx context.Context, sc *scene.Scene, runID string, round int, opts Options) (*RoundResult, error) {
	hooks := observability.Pipeline()
	sc.Grid.ClearSelection()
	rr := &RoundResult{Round: round, Candidates: sc.Grid.Len()}
	hooks.OnRoundStart(ctx, round, rr.Candidates)
	opts.Logger.Debug("round started", "round", round, "candidates", rr.Candidates)

	solveStart := time.Now()
	m, err := cover.Build(ctx, sc.Racks, sc.Grid.Locations(), sc.Oracle())
	if err != nil {
		return nil, err
	}
	sol, hit, err := r.Solve(ctx, m, opts)
	rr.SolveTime = time.Since(solveStart)
	if sol != nil {
		rr.Status = sol.Status.String()
		rr.Bound = sol.Bound
	}
	guards := 0
	if err == nil {
		guards = len(sol.Selected)
	}
	hooks.OnSolveComplete(ctx, round, guards, rr.Status, rr.SolveTime, err)
	if err != nil {
		if sol != nil && len(sol.Selected) > 0 {
			opts.Logger.Warn("solve failed",
				"round", round, "status", rr.Status, "incumbent", len(sol.Selected), "bound", sol.Bound)
		}
		return nil, err
	}

	sc.Grid.Select(sol.Selected...)
	rr.Guards = sc.SelectedGuards()
	rr.CacheHit = hit
	rr.Snapshot = sc.Snapshot(runID, round)

	renderStart := time.Now()
	rr.Artifacts, err = Render(sc, rr.Snapshot, opts)
	rr.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, rr.RenderTime, err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("round solved",
		"round", round,
		"candidates", rr.Candidates,
		"guards", len(rr.Guards),
		"bound", rr.Bound,
		"cached", hit,
		"duration", rr.SolveTime.Round(time.Millisecond))
	return rr, nil
}

// Solve finds a minimum cover of m, consulting the cache first unless
// opts.Refresh is set. Only optimal solutions are cached. A cached entry
// that does not cover m is ignored.
func (r *Runner) Solve(ctx context.Context, m *cover.Matrix, opts Options) (*cover.Solution, bool, error) {
	hooks := observability.Cache()
	key := r.Keyer.SolveKey(m.Hash(), opts.SolveKeyOpts())

	if !opts.Refresh {
		var cached cover.Solution
		hit, err := cache.GetJSON(ctx, r.Cache, key, &cached)
		if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		if hit && cached.Status == cover.Optimal && m.Covers(cached.Selected) {
			hooks.OnCacheHit(ctx, "solve")
			return &cached, true, nil
		}
		hooks.OnCacheMiss(ctx, "solve")
	}

	solver := cover.BranchAndBound{
		Gap:       opts.Gap,
		TimeLimit: opts.SolveTimeout,
		Logger:    opts.Logger,
		Progress: func(explored, pruned, best int) {
			opts.Logger.Debug("searching", "explored", explored, "pruned", pruned, "best", best)
		},
	}
	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return sol, false, err
	}

	if data, err := json.Marshal(sol); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSolve); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "solve", len(data))
		}
	}
	return sol, false, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.History != nil {
		if herr := r.History.Close(); err == nil {
			err = herr
		}
	}
	return err
}

func (r *Runner) startRun(ctx context.Context, opts Options) (string, error) {
	if r.History == nil {
		return uuid.NewString(), nil
	}
	return r.History.CreateRun(ctx, store.Run{
		Strategy: string(opts.Strategy),
		Racks:    opts.Racks,
		Model:    opts.Model.String(),
		Coverage: opts.Coverage.String(),
		Delta:    opts.Delta,
		Seed:     opts.Seed,
	})
}

func (r *Runner) recordRound(ctx context.Context, runID string, rr *RoundResult) error {
	if r.History == nil {
		return nil
	}
	snap, err := json.Marshal(rr.Snapshot)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode snapshot")
	}
	return r.History.AddRound(ctx, store.Round{
		RunID:      runID,
		Round:      rr.Round,
		Candidates: rr.Candidates,
		Guards:     len(rr.Guards),
		Status:     rr.Status,
		Duration:   rr.SolveTime,
		CacheHit:   rr.CacheHit,
		Snapshot:   snap,
	})
}

func (r *Runner) finishRun(ctx context.Context, runID, status string) {
	if r.History == nil {
		return
	}
	// The run's own context may already be cancelled.
	if err := r.History.FinishRun(context.WithoutCancel(ctx), runID, status); err != nil {
		r.Logger.Warn("could not record run status", "run", runID, "error", err)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
