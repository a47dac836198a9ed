package config

import "github.com/matzehuels/footlights/pkg/canvas"

// Slot is one entry of a Structure: a layer of the given kind, painted with
// the named style.
type Slot struct {
	Kind  canvas.Kind `toml:"kind" yaml:"kind" json:"kind"`
	ID    string      `toml:"id" yaml:"id" json:"id"`
	Style string      `toml:"style" yaml:"style" json:"style"`
}

// Structure lists slots bottom first.
type Structure []Slot

// DefaultStructure is a background with a single image on top.
func DefaultStructure() Structure {
	return Structure{
		{Kind: canvas.KindBackground, ID: "bg", Style: "bg"},
		{Kind: canvas.KindImage, ID: "image", Style: "image"},
	}
}
