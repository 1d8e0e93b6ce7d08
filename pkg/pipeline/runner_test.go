package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rackwatch/pkg/cache"
	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
	"github.com/matzehuels/rackwatch/pkg/scene"
	"github.com/matzehuels/rackwatch/pkg/store"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

func smallScene() *scene.Scene {
	arena := rack.NewArena(
		rack.NewFixed(geom.Seg(20, 20, 20, 40), rack.Right),
		rack.NewFixed(geom.Seg(60, 70, 80, 70), rack.Up),
	)
	vis := visibility.Config{Model: visibility.SolversChoice, Mode: visibility.Complete}
	return scene.New(geom.Rect{Right: 100, Bottom: 100}, 3, arena, vis)
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Rounds = 2
	opts.Formats = []string{FormatSVG, FormatJSON}
	return opts
}

func TestExecuteRounds(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	var seen []int
	opts := smallOptions()
	opts.OnRound = func(r *RoundResult) error {
		seen = append(seen, r.Round)
		return nil
	}

	result, err := runner.Execute(context.Background(), opts, smallScene())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Rounds) != 2 || len(seen) != 2 {
		t.Fatalf("rounds = %d, callbacks = %d, want 2", len(result.Rounds), len(seen))
	}

	first, second := result.Rounds[0], result.Rounds[1]
	if second.Candidates < first.Candidates {
		t.Errorf("refinement shrank candidates: %d -> %d", first.Candidates, second.Candidates)
	}
	for _, r := range result.Rounds {
		if len(r.Guards) == 0 {
			t.Errorf("round %d selected no guards", r.Round)
		}
		if r.Status != "optimal" {
			t.Errorf("round %d status = %q", r.Round, r.Status)
		}
		if r.Snapshot.NumGuards != len(r.Guards) || r.Snapshot.Round != r.Round {
			t.Errorf("round %d snapshot = %+v", r.Round, r.Snapshot)
		}
		if !strings.HasPrefix(string(r.Artifacts[FormatSVG]), "<svg") {
			t.Errorf("round %d svg artifact missing", r.Round)
		}
		if _, ok := r.Artifacts[FormatPNG]; ok {
			t.Errorf("round %d rendered an unrequested png", r.Round)
		}
		var snap scene.Snapshot
		if err := json.Unmarshal(r.Artifacts[FormatJSON], &snap); err != nil {
			t.Errorf("round %d json artifact: %v", r.Round, err)
		}
	}
	if got := len(result.Scene.SelectedGuards()); got != len(second.Guards) {
		t.Errorf("scene keeps %d guards, want the last round's %d", got, len(second.Guards))
	}
}

func TestExecuteGeneratesLayout(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	opts := smallOptions()
	opts.Racks = 4
	opts.Rounds = 1
	opts.Model = visibility.SolversChoice

	result, err := runner.Execute(context.Background(), opts, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Scene.Racks.Len() != 4 {
		t.Errorf("racks = %d, want 4", result.Scene.Racks.Len())
	}
	if len(result.Rounds) != 1 {
		t.Errorf("rounds = %d, want 1", len(result.Rounds))
	}
}

func TestExecuteUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, nil)
	opts := smallOptions()
	opts.Rounds = 1

	first, err := runner.Execute(context.Background(), opts, smallScene())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Rounds[0].CacheHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(context.Background(), opts, smallScene())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Rounds[0].CacheHit {
		t.Error("second run should hit the cache")
	}
	if len(second.Rounds[0].Guards) != len(first.Rounds[0].Guards) {
		t.Errorf("cached guards = %d, want %d", len(second.Rounds[0].Guards), len(first.Rounds[0].Guards))
	}

	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts, smallScene())
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if third.Rounds[0].CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteRecordsHistory(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(nil, nil, nil)
	runner.History = st
	defer runner.Close()

	ctx := context.Background()
	result, err := runner.Execute(ctx, smallOptions(), smallScene())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	runs, err := st.Runs(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != store.StatusDone || runs[0].Racks != 2 {
		t.Fatalf("runs = %+v", runs)
	}
	rounds, err := st.Rounds(ctx, runs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != len(result.Rounds) {
		t.Errorf("stored rounds = %d, want %d", len(rounds), len(result.Rounds))
	}
	if result.Rounds[0].Snapshot.RunID != runs[0].ID {
		t.Errorf("snapshot run id = %q, want %q", result.Rounds[0].Snapshot.RunID, runs[0].ID)
	}
}

func TestExecuteStopsOnCallbackError(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	stop := errors.New("stop")
	opts := smallOptions()
	opts.Rounds = 3
	opts.OnRound = func(r *RoundResult) error {
		if r.Round == 1 {
			return stop
		}
		return nil
	}

	result, err := runner.Execute(context.Background(), opts, smallScene())
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v, want stop", err)
	}
	if len(result.Rounds) != 1 {
		t.Errorf("completed rounds = %d, want 1", len(result.Rounds))
	}
}

func TestExecuteCancelled(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Execute(ctx, smallOptions(), smallScene()); err == nil {
		t.Error("cancelled context should fail the run")
	}
}

func TestRoundDoesNotRefine(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	sc := smallScene()
	before := sc.Grid.Len()

	rr, err := runner.Round(context.Background(), sc, 0, smallOptions())
	if err != nil {
		t.Fatalf("Round: %v", err)
	}
	if rr.Candidates != before || sc.Grid.Len() != before {
		t.Errorf("candidates = %d/%d, want %d", rr.Candidates, sc.Grid.Len(), before)
	}
}
