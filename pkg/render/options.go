package render

import "github.com/matzehuels/rackwatch/pkg/scene"

// Pixel sizes and stroke widths.
const (
	DefaultSize   = 700
	DefaultMargin = 20
	captionHeight = 30
	guardRadius   = 5

	boundaryWidth = 3
	rackWidth     = 3
	tickWidth     = 4
	gridWidth     = 1
)

// Options configures both sinks.
type Options struct {
	Size    int     // Pixel side of the logical square
	Margin  int     // Pixels around the square
	Caption string  // Optional text under the drawing
	Palette Palette // Colors
	Scale   float64 // PNG only: resample factor applied after drawing
}

// Option mutates Options.
type Option func(*Options)

// WithSize sets the pixel side of the logical square.
func WithSize(px int) Option { return func(o *Options) { o.Size = px } }

// WithMargin sets the margin around the drawing.
func WithMargin(px int) Option { return func(o *Options) { o.Margin = px } }

// WithCaption adds a caption line below the drawing.
func WithCaption(s string) Option { return func(o *Options) { o.Caption = s } }

// WithPalette replaces the default colors.
func WithPalette(p Palette) Option { return func(o *Options) { o.Palette = p } }

// WithScale resamples PNG output by f, e.g. 2 for a 2x image.
func WithScale(f float64) Option { return func(o *Options) { o.Scale = f } }

func newOptions(opts ...Option) Options {
	o := Options{
		Size:    DefaultSize,
		Margin:  DefaultMargin,
		Palette: DefaultPalette(),
		Scale:   1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}

// width and height of the full canvas in pixels.
func (o Options) canvas() (int, int) {
	w := o.Size + 2*o.Margin
	h := w
	if o.Caption != "" {
		h += captionHeight
	}
	return w, h
}

// toPixels maps a logical coordinate onto the square with y up.
func (o Options) toPixels(v float64) float64 {
	return float64(o.Margin) + v/scene.LogicalSize*float64(o.Size)
}
