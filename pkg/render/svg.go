package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// SVG renders primitives as a standalone SVG document.
func SVG(prims []scene.Primitive, opts ...Option) []byte {
	o := newOptions(opts...)
	w, h := o.canvas()

	// y grows downward in SVG, so logical y is mirrored inside the square.
	px := func(p geom.Point) (float64, float64) {
		return o.toPixels(p.X), o.toPixels(scene.LogicalSize - p.Y)
	}
	line := func(buf *bytes.Buffer, s geom.Segment, c colorful.Color, width int, class string) {
		x1, y1 := px(s.P1)
		x2, y2 := px(s.P2)
		fmt.Fprintf(buf, `  <line class="%s" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%d" stroke-linecap="round"/>`+"\n",
			class, x1, y1, x2, y2, c.Hex(), width)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", o.Palette.Background.Hex())

	for _, p := range prims {
		switch p.Kind {
		case scene.KindBoundary:
			x1, y1 := px(geom.Pt(p.Rect.Left, p.Rect.Bottom))
			x2, y2 := px(geom.Pt(p.Rect.Right, p.Rect.Top))
			fmt.Fprintf(&buf, `  <rect class="boundary" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
				x1, y1, x2-x1, y2-y1, o.Palette.Boundary.Hex(), boundaryWidth)
		case scene.KindRack:
			line(&buf, p.Seg, o.Palette.Rack, rackWidth, "rack")
		case scene.KindTick:
			line(&buf, p.Seg, o.Palette.Tick, tickWidth, "tick")
		case scene.KindGridLine:
			line(&buf, p.Seg, o.Palette.Grid, gridWidth, "grid")
		case scene.KindGuard:
			c, class := o.Palette.Candidate, "candidate"
			if p.Selected {
				c, class = o.Palette.Selected, "guard"
			}
			x, y := px(p.At)
			fmt.Fprintf(&buf, `  <circle class="%s" cx="%.2f" cy="%.2f" r="%d" fill="%s"/>`+"\n",
				class, x, y, guardRadius, c.Hex())
		}
	}

	if o.Caption != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="sans-serif" font-size="14" fill="%s">%s</text>`+"\n",
			o.Margin, o.Size+2*o.Margin+captionHeight/2, o.Palette.Text.Hex(), escapeXML(o.Caption))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
