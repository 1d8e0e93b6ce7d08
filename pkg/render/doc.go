// Package render draws scene primitives as SVG or PNG.
//
// # Overview
//
// Renderers consume the [scene.Primitive] values returned by
// [scene.Scene.Drawables]. Primitives live in a logical space of 0–100 on
// each axis with y pointing up; this package owns the mapping to pixels.
//
//	prims := sc.Drawables(scene.DrawOptions{Grid: true})
//	svg := render.SVG(prims, render.WithCaption(sc.Caption()))
//	png, err := render.PNG(prims, render.WithSize(700))
//
// # Coordinates
//
// The logical square is drawn at [Options] Size pixels inside a margin.
// SVG output flips y while emitting coordinates. PNG output is drawn with
// y up and flipped once as a whole image, after which the caption is
// drawn the right way round.
//
// # Styling
//
// Colors come from a [Palette]. The default follows the classic look:
// navy racks, grey grid lines, red selected guards and green candidates.
// Grid lines are blended toward the background in Lab space so they stay
// visually behind the racks.
//
// [scene.Primitive]: github.com/matzehuels/rackwatch/pkg/scene.Primitive
// [scene.Scene.Drawables]: github.com/matzehuels/rackwatch/pkg/scene.Scene.Drawables
package render
