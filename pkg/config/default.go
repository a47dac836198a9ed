package config

import "github.com/matzehuels/footlights/pkg/canvas"

// DefaultImageTemplate makes the default image slot show the piped-in image.
const DefaultImageTemplate = "{{ .Image }}"

// Default returns the starter document written by `footlights init`: a
// blurred pastel gradient behind a rounded, shadowed image.
func Default() *Document {
	blur := 12.0
	round := 20
	shadow := NewShadow(5, 5)
	image := DefaultImageTemplate

	return &Document{
		Layers: DefaultStructure(),
		Styles: StyleCollection{
			"bg": {
				Blur: &blur,
				Color: Linear(35,
					canvas.GradientStop{Color: "hsl(240 46% 65%)", Offset: "0%"},
					canvas.GradientStop{Color: "hsl(313 39% 65%)", Offset: "27%"},
					canvas.GradientStop{Color: "hsl(359 66% 77%)", Offset: "49%"},
					canvas.GradientStop{Color: "hsl(33 57% 79%)", Offset: "77%"},
					canvas.GradientStop{Color: "hsl(56 37% 89%)", Offset: "100%"},
				),
			},
			"image": {
				Image:  &image,
				Round:  &round,
				Shadow: &shadow,
			},
		},
	}
}
