package pipeline

import (
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateScene places racks with opts.Strategy and wraps them in a scene
// with a fresh grid. Racks are drawn from a generator seeded with
// opts.Seed, so equal options give equal scenes.
func GenerateScene(opts Options) (*scene.Scene, error) {
	rng := layout.NewRand(opts.Seed)
	arena, err := layout.Generate(opts.Strategy, opts.LayoutOptions(), rng)
	if err != nil {
		return nil, err
	}
	return scene.New(opts.BoundaryRect(), opts.Epsilon, arena, opts.VisibilityConfig()), nil
}
