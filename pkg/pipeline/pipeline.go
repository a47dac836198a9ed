// Package pipeline runs a footlights document through build, render and
// conversion.
//
// This package is the single path from a parsed [config.Document] to output
// bytes, shared by the CLI and the HTTP server so both apply the same
// defaults, caching and hooks.
//
// # Stages
//
//  1. Build: resolve the document's slots against its styles into a canvas,
//     probing image sizes through an [imagesize.Provider]
//  2. Render: lay the canvas out and serialize it as SVG
//  3. Convert: rasterize to PNG or PDF when requested. Image sources that
//     are not data URLs are loaded and inlined first, through an
//     [imagesize.Loader]
//
// # Usage
//
//	runner := pipeline.NewRunner(c, imagesize.NewProber(), logger)
//	result, err := runner.Render(ctx, doc, pipeline.Options{Format: pipeline.FormatPNG})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("out.png", result.Artifact, 0o644)
//
// Rendered artifacts are cached by document content. PNG and PDF keys cover
// the inlined image bytes. SVG documents that point at files or URLs are never
// served from the cache, since the image behind a reference can change
// without the document changing.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/footlights/pkg/cache"
	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
)

// DefaultScale is the PNG pixel density when none is given.
const DefaultScale = 2.0

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

var mediaTypes = map[string]string{
	FormatSVG: "image/svg+xml",
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
}

// Options configures a render.
type Options struct {
	Format  string  `json:"format,omitempty"`
	Scale   float64 `json:"scale,omitempty"` // PNG only
	NoCache bool    `json:"no_cache,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result is the output of a render.
type Result struct {
	// Artifact holds the rendered bytes in Format.
	Artifact []byte
	Format   string

	// DocHash is the content hash of the document that was rendered.
	DocHash string

	// Size is the document size in CSS pixels. It is zero on a cache hit.
	Size canvas.Size

	Stats    Stats
	CacheHit bool
}

// MediaType is the Content-Type of the artifact.
func (r *Result) MediaType() string { return MediaType(r.Format) }

// Stats holds timings for one render.
type Stats struct {
	Layers      int
	BuildTime   time.Duration
	RenderTime  time.Duration
	ConvertTime time.Duration
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// MediaType returns the Content-Type for an output format.
func MediaType(format string) string {
	if mt, ok := mediaTypes[format]; ok {
		return mt
	}
	return "application/octet-stream"
}

// ValidateAndSetDefaults fills in defaults and rejects bad values. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be > 0, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for the artifact. Scale only
// affects PNG output.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: o.Format}
	if o.Format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
