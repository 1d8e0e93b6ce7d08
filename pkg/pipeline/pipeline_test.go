package pipeline

import (
	"testing"
	"time"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options should validate: %v", err)
	}
	if opts.Racks != DefaultRacks || opts.Rounds != DefaultRounds {
		t.Errorf("racks/rounds = %d/%d", opts.Racks, opts.Rounds)
	}
	if !opts.HasFormat(FormatSVG) || opts.HasFormat(FormatPNG) {
		t.Errorf("formats = %v", opts.Formats)
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.Boundary != DefaultBoundary {
		t.Errorf("Boundary = %v", opts.Boundary)
	}
	if opts.Epsilon != DefaultEpsilon {
		t.Errorf("Epsilon = %v", opts.Epsilon)
	}
	if opts.Strategy != layout.GrowOneByOne {
		t.Errorf("Strategy = %q", opts.Strategy)
	}
	if opts.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d", opts.MaxAttempts)
	}
	if opts.SolveTimeout != DefaultSolveTimeout {
		t.Errorf("SolveTimeout = %v", opts.SolveTimeout)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	// Zero gap and delta are meaningful and stay.
	if opts.Gap != 0 || opts.Delta != 0 {
		t.Errorf("gap/delta = %v/%v, want 0/0", opts.Gap, opts.Delta)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"inverted boundary", func(o *Options) { o.Boundary = [4]float64{100, 0, 0, 100} }},
		{"flat boundary", func(o *Options) { o.Boundary = [4]float64{0, 5, 100, 5} }},
		{"negative epsilon", func(o *Options) { o.Epsilon = -1 }},
		{"negative racks", func(o *Options) { o.Racks = -3 }},
		{"unknown strategy", func(o *Options) { o.Strategy = "spiral" }},
		{"negative delta", func(o *Options) { o.Delta = -0.5 }},
		{"negative rounds", func(o *Options) { o.Rounds = -1 }},
		{"negative timeout", func(o *Options) { o.SolveTimeout = -time.Second }},
		{"gap above one", func(o *Options) { o.Gap = 1.5 }},
		{"bad format", func(o *Options) { o.Formats = []string{"gif"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errs.GetCode(err); code != errs.ErrCodeInvalidConfig && code != errs.ErrCodeInvalidFormat {
				t.Errorf("code = %s", code)
			}
		})
	}
}

func TestOptionsDerived(t *testing.T) {
	opts := DefaultOptions()
	opts.Boundary = [4]float64{10, 20, 110, 220}
	opts.Model = visibility.SolversChoice
	opts.Coverage = visibility.AllButDelta
	opts.Delta = 4

	b := opts.BoundaryRect()
	if b.Width() != 100 || b.Height() != 200 {
		t.Errorf("boundary = %+v", b)
	}
	lo := opts.LayoutOptions()
	if lo.AreaBuffer != layout.DefaultAreaBuffer {
		t.Errorf("AreaBuffer = %v, want %v", lo.AreaBuffer, layout.DefaultAreaBuffer)
	}
	if lo.Count != opts.Racks || lo.Epsilon != opts.Epsilon || lo.Boundary != b {
		t.Errorf("layout options = %+v", lo)
	}
	vc := opts.VisibilityConfig()
	if vc.Model != visibility.SolversChoice || vc.Mode != visibility.AllButDelta || vc.Delta != 4 {
		t.Errorf("visibility config = %+v", vc)
	}
	key := opts.SolveKeyOpts()
	if key.Gap != opts.Gap || key.TimeLimit != opts.SolveTimeout {
		t.Errorf("solve key opts = %+v", key)
	}
}
