package rack

import (
	"fmt"
	"strings"
)

// Direction is the side of a rack from which it must be guarded. UP means
// the guard's y-coordinate is greater than the rack's.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Either
	BothSides
)

var directionNames = [...]string{
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	Either:    "either",
	BothSides: "both",
}

var directionLabels = [...]string{
	Up:        "FROM ABOVE",
	Down:      "FROM BELOW",
	Left:      "FROM LEFT",
	Right:     "FROM RIGHT",
	Either:    "FROM EITHER SIDE",
	BothSides: "FROM BOTH SIDES",
}

// Valid reports whether d is one of the defined directions.
func (d Direction) Valid() bool { return d >= Up && d <= BothSides }

// String returns the short lowercase name used in config and JSON.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Label returns the human-readable guarding label, e.g. "FROM ABOVE".
func (d Direction) Label() string {
	if !d.Valid() {
		return d.String()
	}
	return directionLabels[d]
}

// Horizontal reports whether d faces left or right, which implies a
// vertical rack.
func (d Direction) Horizontal() bool { return d == Left || d == Right }

// Vertical reports whether d faces up or down, which implies a horizontal
// rack.
func (d Direction) Vertical() bool { return d == Up || d == Down }

// Opposite returns the direction facing the other way. Either and
// BothSides are their own opposites.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// ParseDirection accepts a short name ("up") or a label ("FROM ABOVE").
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	for i := range directionNames {
		if strings.EqualFold(s, directionNames[i]) || strings.EqualFold(s, directionLabels[i]) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// MarshalText encodes d by its short name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a short name or label.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
