// Package config describes footlights documents and resolves them into canvases.
//
// A [Document] is a [Structure] (the ordered layer slots, bottom first) plus
// a [StyleCollection] (named attribute sets the slots point at). Documents
// are written in TOML, YAML or JSON:
//
//	[[layers]]
//	kind = "background"
//	id = "bg"
//	style = "bg"
//
//	[[layers]]
//	kind = "image"
//	id = "image"
//	style = "image"
//
//	[styles.bg]
//	blur = 12
//	[styles.bg.color]
//	pure = "white"
//
//	[styles.image]
//	image = "{{ .Image }}"
//	round = 20
//	[styles.image.shadow]
//	x = 5
//	y = 5
//
// Omitted shadow blur and opacity default to 7 and 0.6. Size and position
// overrides use the same text form as the canvas policies: "fit-content(P)",
// "absolute(W,H)", "center", "absolute(X,Y)".
//
// Files are expanded with text/template before parsing (see [Template]), then
// [Build] turns the result into a [canvas.Canvas].
package config
