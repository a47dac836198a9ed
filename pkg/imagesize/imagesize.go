// Package imagesize looks up the intrinsic pixel dimensions of image sources.
//
// Canvas layers never decode images themselves; the config resolver asks a
// [Provider] for the size of every image slot. Three source forms are
// understood by the [Prober]:
//
//   - local paths (optionally relative to a base directory, or file:// URLs)
//   - base64 data URLs, as produced from piped stdin
//   - http and https URLs, only when enabled with [WithRemote]
//
// PNG, JPEG, GIF, WebP, BMP and TIFF headers are read with image.DecodeConfig.
// SVG sources report their width/height attributes or viewBox.
package imagesize

import (
	"context"
	"net/http"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
)

// Provider returns the intrinsic size of an image source.
type Provider interface {
	ImageSize(ctx context.Context, src string) (canvas.Size, error)
}

// Loader returns the raw bytes of an image source. Rasterizers cannot follow
// relative or remote references, so the pipeline embeds images through a
// Loader before converting to PNG or PDF.
type Loader interface {
	Load(ctx context.Context, src string) ([]byte, error)
}

// MediaType returns the media type of image data, recognizing SVG markup.
func MediaType(data []byte) string {
	if looksLikeSVG(data) {
		return "image/svg+xml"
	}
	return http.DetectContentType(data)
}

// Func adapts a function to a Provider.
type Func func(ctx context.Context, src string) (canvas.Size, error)

// ImageSize calls f.
func (f Func) ImageSize(ctx context.Context, src string) (canvas.Size, error) {
	return f(ctx, src)
}

// Static serves sizes from a fixed table.
type Static map[string]canvas.Size

// ImageSize returns the registered size of src.
func (s Static) ImageSize(_ context.Context, src string) (canvas.Size, error) {
	size, ok := s[src]
	if !ok {
		return canvas.Size{}, errors.New(errors.ErrCodeFileNotFound, "no size registered for %q", src)
	}
	return size, nil
}

var (
	_ Provider = Func(nil)
	_ Provider = Static(nil)
	_ Provider = (*Prober)(nil)
	_ Loader   = (*Prober)(nil)
)
