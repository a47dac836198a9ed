// Package render converts SVG documents to raster and print formats.
//
// [ToPNG] and [ToPDF] pipe the SVG through the external rsvg-convert tool
// from librsvg. When the tool is missing they fail with an UNSUPPORTED error
// that says how to install it.
//
//	svg, _ := c.RenderString()
//	png, err := render.ToPNG([]byte(svg), 2) // 2x pixel density
//	pdf, err := render.ToPDF([]byte(svg))
package render
