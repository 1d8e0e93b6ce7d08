package pipeline

import (
	"github.com/matzehuels/rackwatch/pkg/io"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// LoadScene reads a stored snapshot and rebuilds its scene. The scene keeps
// the snapshot's boundary, clearance and guarding rules; selections are
// dropped and the grid is reset to the rack endpoints so rounds start from
// the coarsest candidate set.
func LoadScene(path string, opts Options) (*scene.Scene, error) {
	sc, err := io.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	sc.ResetGrid()
	if opts.Logger != nil {
		sc.Visibility.Logger = opts.Logger
	}
	return sc, nil
}

// ApplyScene copies the scene's stored settings into opts so logs, cache
// keys and history rows describe the loaded scene rather than the flags.
func ApplyScene(opts *Options, sc *scene.Scene) {
	b := sc.Boundary
	opts.Boundary = [4]float64{b.Left, b.Top, b.Right, b.Bottom}
	opts.Epsilon = sc.Epsilon
	opts.Racks = sc.Racks.Len()
	opts.Model = sc.Visibility.Model
	opts.Coverage = sc.Visibility.Mode
	opts.Delta = sc.Visibility.Delta
}
