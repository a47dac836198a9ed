// Package pkg provides the libraries behind footlights, which puts an image
// on a styled stage: backgrounds, rounded corners and drop shadows composed
// into an SVG document.
//
// # Architecture
//
// The data flow through footlights:
//
//	TOML / YAML / JSON document
//	         ↓
//	    [config] package (template, parse, validate, build)
//	         ↓
//	    [canvas] package (two-pass layout + SVG markup)
//	         ↓
//	    [render] package (rsvg-convert for PNG and PDF)
//	         ↓
//	    SVG/PNG/PDF output
//
// [pipeline] ties these steps together behind a [pipeline.Runner], which
// caches finished artifacts in a [cache.Cache]. [imagesize] measures the
// intrinsic size of file, URL and data URL images for the build step.
//
// # Quick Start
//
//	doc, err := config.Load("stage.toml", config.TemplateData{Image: "shot.png"})
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), imagesize.NewProber(), nil)
//	result, err := runner.Render(ctx, doc, pipeline.Options{Format: pipeline.FormatPNG})
//
// Supporting packages: [errors] (coded errors), [observability] (hooks for
// render and cache events), [dataurl] and [buildinfo].
package pkg
