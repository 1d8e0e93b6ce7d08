// Package scene ties racks, the candidate grid and the visibility settings
// into one aggregate that the pipeline solves round by round.
//
// # Overview
//
// A [Scene] owns the boundary rectangle, the clearance value, the frozen
// rack arena, the current [grid.Grid] and the [visibility.Config]. The
// solver writes its answer back by selecting guards on the grid; everything
// else reads the scene.
//
// # Consumers
//
// Two read-only views leave the package:
//
//   - [Scene.Snapshot] returns a serializable record of the scene and the
//     selected guards, see [Snapshot].
//   - [Scene.Drawables] returns [Primitive] values in a logical 0–100
//     coordinate space for renderers.
//
// [FromSnapshot] goes the other way and rebuilds a scene from a stored
// snapshot so it can be solved again without regenerating the layout.
package scene

import (
	"fmt"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/grid"
	"github.com/matzehuels/rackwatch/pkg/rack"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

// Scene is the aggregate solved by the pipeline.
type Scene struct {
	Boundary   geom.Rect
	Epsilon    float64
	Racks      *rack.Arena
	Grid       *grid.Grid
	Visibility visibility.Config

	oracle *visibility.Oracle
}

// New returns a scene over a frozen arena with a fresh grid.
func New(boundary geom.Rect, eps float64, arena *rack.Arena, vis visibility.Config) *Scene {
	if arena == nil {
		arena = rack.NewArena()
	}
	arena.Freeze()
	return &Scene{
		Boundary:   boundary,
		Epsilon:    eps,
		Racks:      arena,
		Grid:       grid.New(boundary, arena),
		Visibility: vis,
	}
}

// ResetGrid discards refinements and selections and rebuilds the grid from
// the rack endpoints.
func (s *Scene) ResetGrid() {
	s.Grid = grid.New(s.Boundary, s.Racks)
}

// Oracle returns the visibility oracle for the scene's racks. It is built
// on first use; racks are frozen so it never goes stale.
func (s *Scene) Oracle() *visibility.Oracle {
	if s.oracle == nil {
		s.oracle = visibility.New(s.Racks, s.Visibility)
	}
	return s.oracle
}

// SelectedGuards returns the guards chosen by the last solve.
func (s *Scene) SelectedGuards() []grid.Guard { return s.Grid.Selected() }

// Caption is the one-line summary drawn under rendered scenes.
func (s *Scene) Caption() string {
	return fmt.Sprintf("# Racks = %d, # Guards = %d", s.Racks.Len(), len(s.SelectedGuards()))
}
