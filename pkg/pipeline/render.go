package pipeline

import (
	"bytes"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/io"
	"github.com/matzehuels/rackwatch/pkg/render"
	"github.com/matzehuels/rackwatch/pkg/scene"
)

// Render generates the requested artifacts for the scene's current state.
// The JSON artifact is the given snapshot.
func Render(sc *scene.Scene, snap scene.Snapshot, opts Options) (map[string][]byte, error) {
	var renderOpts []render.Option
	if opts.Caption {
		renderOpts = append(renderOpts, render.WithCaption(sc.Caption()))
	}

	var prims []scene.Primitive
	if opts.HasFormat(FormatSVG) || opts.HasFormat(FormatPNG) {
		prims = sc.Drawables(opts.DrawOptions())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = render.SVG(prims, renderOpts...)
		case FormatPNG:
			data, err := render.PNG(prims, renderOpts...)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInternal, err, "render png")
			}
			artifacts[format] = data
		case FormatJSON:
			var buf bytes.Buffer
			if err := io.WriteJSON(snap, &buf); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInternal, err, "render json")
			}
			artifacts[format] = buf.Bytes()
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
		}
	}
	return artifacts, nil
}
