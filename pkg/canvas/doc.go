// Package canvas composes stacked visual layers into an SVG document.
//
// # Overview
//
// A [Canvas] is an ordered stack of layers. Each layer reports a declarative
// size policy ([SizeOption]) and position policy ([PositionOption]); the
// canvas resolves those policies into pixel geometry and asks every layer to
// render itself at that geometry.
//
// Three layer kinds exist:
//
//   - [Background]: solid fill or linear gradient, optional Gaussian blur.
//     Wraps everything above it with a 100px margin by default.
//   - [Image]: an external raster reference with optional rounded corners and
//     drop shadow. Sized to its intrinsic size plus shadow clearance.
//   - [BasicShape]: a flat-filled rectangle.
//
// # Layout
//
// Layout runs in two passes. The size pass walks from the top layer down,
// so a fit-content background can wrap the accumulated size of everything
// painted over it. The position pass walks from the bottom up, placing each
// layer within the footprint of the layer beneath it.
//
//	c := canvas.New()
//	c.Push(canvas.NewPureBackground("white"))
//	c.Push(canvas.NewImage("logo.png", canvas.Size{Width: 400, Height: 300}).WithRound(20))
//	svg, err := c.RenderString()
//
// Definitions (gradients, filters, clip paths) are referenced by url(#id), so
// every id a layer creates includes the layer's stack index.
package canvas
