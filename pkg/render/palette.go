package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors used for each primitive kind.
type Palette struct {
	Background colorful.Color
	Boundary   colorful.Color
	Rack       colorful.Color
	Tick       colorful.Color
	Grid       colorful.Color
	Selected   colorful.Color
	Candidate  colorful.Color
	Text       colorful.Color
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	bg := mustHex("#ffffff")
	return Palette{
		Background: bg,
		Boundary:   mustHex("#000000"),
		Rack:       mustHex("#000080"),
		Tick:       mustHex("#000080"),
		Grid:       bg.BlendLab(mustHex("#808080"), 0.6).Clamped(),
		Selected:   mustHex("#ff0000"),
		Candidate:  mustHex("#008000"),
		Text:       mustHex("#000000"),
	}
}

// ParsePalette overrides entries of the default palette by name
// ("background", "boundary", "rack", "tick", "grid", "selected",
// "candidate", "text") with hex colors.
func ParsePalette(hex map[string]string) (Palette, error) {
	p := DefaultPalette()
	slots := map[string]*colorful.Color{
		"background": &p.Background,
		"boundary":   &p.Boundary,
		"rack":       &p.Rack,
		"tick":       &p.Tick,
		"grid":       &p.Grid,
		"selected":   &p.Selected,
		"candidate":  &p.Candidate,
		"text":       &p.Text,
	}
	for name, h := range hex {
		slot, ok := slots[name]
		if !ok {
			return p, fmt.Errorf("unknown palette entry %q", name)
		}
		c, err := colorful.Hex(h)
		if err != nil {
			return p, fmt.Errorf("palette %s: %w", name, err)
		}
		*slot = c
	}
	return p, nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
