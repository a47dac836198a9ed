package pipeline

import (
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/render"
)

// Convert turns rendered SVG into the requested output format.
func Convert(svg []byte, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatSVG, "":
		return svg, nil
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return render.ToPNG(svg, scale)
	case FormatPDF:
		return render.ToPDF(svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
}
