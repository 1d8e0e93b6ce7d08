package render

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// PNG rasterizes primitives and encodes them as PNG.
func PNG(prims []scene.Primitive, opts ...Option) ([]byte, error) {
	img := Image(prims, opts...)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Image rasterizes primitives. The square is drawn with y up and then
// flipped so logical up is image up.
func Image(prims []scene.Primitive, opts ...Option) image.Image {
	o := newOptions(opts...)
	w, h := o.canvas()

	// Draw the square area in y-up pixel rows; the caption band is added
	// after the flip.
	side := o.Size + 2*o.Margin
	dc := gg.NewContext(w, side)
	dc.SetColor(o.Palette.Background)
	dc.Clear()

	px := func(p geom.Point) (float64, float64) { return o.toPixels(p.X), o.toPixels(p.Y) }
	stroke := func(s geom.Segment, width int) {
		x1, y1 := px(s.P1)
		x2, y2 := px(s.P2)
		dc.SetLineWidth(float64(width))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	dc.SetLineCap(gg.LineCapRound)
	for _, p := range prims {
		switch p.Kind {
		case scene.KindBoundary:
			x1, y1 := px(p.Rect.TopLeft())
			x2, y2 := px(p.Rect.BottomRight())
			dc.SetColor(o.Palette.Boundary)
			dc.SetLineWidth(boundaryWidth)
			dc.DrawRectangle(x1, y1, x2-x1, y2-y1)
			dc.Stroke()
		case scene.KindRack:
			dc.SetColor(o.Palette.Rack)
			stroke(p.Seg, rackWidth)
		case scene.KindTick:
			dc.SetColor(o.Palette.Tick)
			stroke(p.Seg, tickWidth)
		case scene.KindGridLine:
			dc.SetColor(o.Palette.Grid)
			stroke(p.Seg, gridWidth)
		case scene.KindGuard:
			if p.Selected {
				dc.SetColor(o.Palette.Selected)
			} else {
				dc.SetColor(o.Palette.Candidate)
			}
			x, y := px(p.At)
			dc.DrawCircle(x, y, guardRadius)
			dc.Fill()
		}
	}

	square := imaging.FlipV(dc.Image())
	if o.Caption != "" {
		out := gg.NewContext(w, h)
		out.SetColor(o.Palette.Background)
		out.Clear()
		out.DrawImage(square, 0, 0)
		out.SetColor(o.Palette.Text)
		out.DrawStringAnchored(o.Caption, float64(o.Margin), float64(side+captionHeight/2), 0, 0.5)
		square = imaging.Clone(out.Image())
	}

	if o.Scale > 0 && o.Scale != 1 {
		b := square.Bounds()
		return imaging.Resize(square, int(float64(b.Dx())*o.Scale), 0, imaging.Lanczos)
	}
	return square
}
