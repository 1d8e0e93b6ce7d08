package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/pipeline"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rackwatch.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
boundary = [0.0, 0.0, 200.0, 150.0]
racks = 12
strategy = "grow-together"
guarding_model = "Solver's Choice"
coverage = "delta"
delta = 7.5
rounds = 3
solve_timeout = "30s"
gap = 0.0
formats = ["svg", "png"]
draw_candidates = true
`)

	opts := pipeline.DefaultOptions()
	if err := Load(path, &opts); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if opts.Boundary != [4]float64{0, 0, 200, 150} {
		t.Errorf("Boundary = %v", opts.Boundary)
	}
	if opts.Racks != 12 || opts.Rounds != 3 {
		t.Errorf("racks/rounds = %d/%d", opts.Racks, opts.Rounds)
	}
	if opts.Strategy != layout.GrowTogether {
		t.Errorf("Strategy = %q", opts.Strategy)
	}
	if opts.Model != visibility.SolversChoice || opts.Coverage != visibility.AllButDelta || opts.Delta != 7.5 {
		t.Errorf("visibility = %v/%v/%v", opts.Model, opts.Coverage, opts.Delta)
	}
	if opts.SolveTimeout != 30*time.Second {
		t.Errorf("SolveTimeout = %v", opts.SolveTimeout)
	}
	if opts.Gap != 0 {
		t.Errorf("Gap = %v, want 0", opts.Gap)
	}
	if !opts.HasFormat(pipeline.FormatPNG) || opts.HasFormat(pipeline.FormatJSON) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if !opts.DrawCandidates || !opts.DrawGrid {
		t.Errorf("draw = %v/%v", opts.DrawGrid, opts.DrawCandidates)
	}
	// Untouched keys keep their defaults.
	if opts.Epsilon != pipeline.DefaultEpsilon || opts.Seed != pipeline.DefaultSeed {
		t.Errorf("epsilon/seed = %v/%v", opts.Epsilon, opts.Seed)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errs.Code
	}{
		{"unknown key", "rackz = 3\n", errs.ErrCodeInvalidConfig},
		{"bad syntax", "racks = \n", errs.ErrCodeInvalidConfig},
		{"bad model", "guarding_model = \"nobody\"\n", errs.ErrCodeInvalidConfig},
		{"invalid value", "gap = 2.0\n", errs.ErrCodeInvalidConfig},
		{"bad format", "formats = [\"bmp\"]\n", errs.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pipeline.DefaultOptions()
			err := Load(writeConfig(t, tt.content), &opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errs.GetCode(err); code != tt.code {
				t.Errorf("code = %s, want %s (%v)", code, tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	opts := pipeline.DefaultOptions()
	err := Load(filepath.Join(t.TempDir(), "missing.toml"), &opts)
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDecode(t *testing.T) {
	opts := pipeline.DefaultOptions()
	if err := Decode("racks = 5\nseed = 7\n", &opts); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if opts.Racks != 5 || opts.Seed != 7 {
		t.Errorf("racks/seed = %d/%d", opts.Racks, opts.Seed)
	}
}
