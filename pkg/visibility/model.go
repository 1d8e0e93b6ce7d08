package visibility

import (
	"fmt"
	"strings"
)

// Model decides which side of a rack a guard must stand on.
type Model int

const (
	// PosersChoice fixes the visible side by each rack's direction.
	PosersChoice Model = iota
	// SolversChoice places no side constraint on guards.
	SolversChoice
	// BothSides accepts a guard on either side of a rack.
	BothSides
)

var modelNames = [...]string{"posers", "solvers", "both"}
var modelLabels = [...]string{"Poser's Choice", "Solver's Choice", "Both Sides"}

// String returns the short config name.
func (m Model) String() string {
	if m < 0 || int(m) >= len(modelNames) {
		return fmt.Sprintf("model(%d)", int(m))
	}
	return modelNames[m]
}

// Label returns the display name used in snapshots.
func (m Model) Label() string {
	if m < 0 || int(m) >= len(modelLabels) {
		return m.String()
	}
	return modelLabels[m]
}

// ParseModel accepts a short name or a display label.
func ParseModel(s string) (Model, error) {
	for i := range modelNames {
		if strings.EqualFold(s, modelNames[i]) || strings.EqualFold(s, modelLabels[i]) {
			return Model(i), nil
		}
	}
	return 0, fmt.Errorf("unknown guarding model %q", s)
}

// MarshalText encodes m by its short name.
func (m Model) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a short name or label.
func (m *Model) UnmarshalText(b []byte) error {
	v, err := ParseModel(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Mode selects how occlusion is judged.
type Mode int

const (
	// Complete rejects a sightline that any other rack touches.
	Complete Mode = iota
	// AllButDelta tolerates shadows on the target no longer than Delta.
	AllButDelta
)

var modeNames = [...]string{"complete", "delta"}
var modeLabels = [...]string{"Complete Coverage", "All-But-Delta Coverage"}

// String returns the short config name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label returns the display name used in snapshots.
func (m Mode) Label() string {
	if m < 0 || int(m) >= len(modeLabels) {
		return m.String()
	}
	return modeLabels[m]
}

// ParseMode accepts a short name or a display label.
func ParseMode(s string) (Mode, error) {
	for i := range modeNames {
		if strings.EqualFold(s, modeNames[i]) || strings.EqualFold(s, modeLabels[i]) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown coverage mode %q", s)
}

// MarshalText encodes m by its short name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a short name or label.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
