package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
)

// Shadow defaults applied when a document omits them.
const (
	DefaultShadowBlur    = 7
	DefaultShadowOpacity = canvas.DefaultShadowOpacity
)

// Style is a flat set of optional layer attributes. A nil field means the
// attribute is not set; each layer kind reads only the fields it uses.
type Style struct {
	Position *canvas.PositionOption `toml:"position,omitempty" yaml:"position,omitempty" json:"position,omitempty"`
	Size     *canvas.SizeOption     `toml:"size,omitempty" yaml:"size,omitempty" json:"size,omitempty"`
	Image    *string                `toml:"image,omitempty" yaml:"image,omitempty" json:"image,omitempty"`
	Round    *int                   `toml:"round,omitempty" yaml:"round,omitempty" json:"round,omitempty"`
	Shadow   *Shadow                `toml:"shadow,omitempty" yaml:"shadow,omitempty" json:"shadow,omitempty"`
	Color    *Fill                  `toml:"color,omitempty" yaml:"color,omitempty" json:"color,omitempty"`
	Blur     *float64               `toml:"blur,omitempty" yaml:"blur,omitempty" json:"blur,omitempty"`
}

// StyleCollection maps style names to styles.
type StyleCollection map[string]Style

// Shadow is the drop shadow of an image slot.
type Shadow struct {
	X       int     `toml:"x" yaml:"x" json:"x"`
	Y       int     `toml:"y" yaml:"y" json:"y"`
	Blur    int     `toml:"blur" yaml:"blur" json:"blur"`
	Opacity float64 `toml:"opacity" yaml:"opacity" json:"opacity"`
}

// NewShadow returns a shadow at (x, y) with the default blur and opacity.
func NewShadow(x, y int) Shadow {
	return Shadow{X: x, Y: y, Blur: DefaultShadowBlur, Opacity: DefaultShadowOpacity}
}

// UnmarshalYAML fills omitted blur and opacity with their defaults.
func (s *Shadow) UnmarshalYAML(node *yaml.Node) error {
	type plain Shadow
	v := plain(NewShadow(0, 0))
	if err := node.Decode(&v); err != nil {
		return err
	}
	*s = Shadow(v)
	return nil
}

// UnmarshalJSON fills omitted blur and opacity with their defaults.
func (s *Shadow) UnmarshalJSON(data []byte) error {
	type plain Shadow
	v := plain(NewShadow(0, 0))
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Shadow(v)
	return nil
}

// DropShadow converts s to its canvas form.
func (s Shadow) DropShadow() canvas.DropShadow {
	return canvas.DropShadow{X: s.X, Y: s.Y, Blur: s.Blur, Opacity: s.Opacity}
}

// Fill describes how a background is painted. Exactly one variant must be set.
type Fill struct {
	Pure   canvas.Color    `toml:"pure,omitempty" yaml:"pure,omitempty" json:"pure,omitempty"`
	Linear *LinearGradient `toml:"linear,omitempty" yaml:"linear,omitempty" json:"linear,omitempty"`
	Radial *RadialGradient `toml:"radial,omitempty" yaml:"radial,omitempty" json:"radial,omitempty"`
}

// LinearGradient is an ordered list of stops rotated by Degree.
type LinearGradient struct {
	Degree float64               `toml:"degree" yaml:"degree" json:"degree"`
	Stops  []canvas.GradientStop `toml:"stops" yaml:"stops" json:"stops"`
}

// RadialGradient is accepted in documents but cannot be rendered yet.
type RadialGradient struct{}

// Pure returns a solid fill.
func Pure(c canvas.Color) *Fill { return &Fill{Pure: c} }

// Linear returns a linear gradient fill.
func Linear(degree float64, stops ...canvas.GradientStop) *Fill {
	return &Fill{Linear: &LinearGradient{Degree: degree, Stops: stops}}
}

func (f *Fill) variants() int {
	n := 0
	if f.Pure != "" {
		n++
	}
	if f.Linear != nil {
		n++
	}
	if f.Radial != nil {
		n++
	}
	return n
}

// background builds the canvas background this fill describes.
func (f *Fill) background() (*canvas.Background, error) {
	if n := f.variants(); n != 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "color must set exactly one of pure, linear or radial (got %d)", n)
	}
	switch {
	case f.Linear != nil:
		if len(f.Linear.Stops) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "linear gradient needs at least one stop")
		}
		return canvas.NewLinearGradientBackground(f.Linear.Stops, f.Linear.Degree), nil
	case f.Radial != nil:
		return canvas.NewRadialBackground(), nil
	default:
		return canvas.NewPureBackground(f.Pure), nil
	}
}

// validate rejects negative numeric attributes.
func (s Style) validate() error {
	switch {
	case s.Round != nil && *s.Round < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "round must be >= 0, got %d", *s.Round)
	case s.Blur != nil && *s.Blur < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "blur must be >= 0, got %g", *s.Blur)
	case s.Shadow != nil && (s.Shadow.X < 0 || s.Shadow.Y < 0 || s.Shadow.Blur < 0):
		return errors.New(errors.ErrCodeInvalidConfig, "shadow offsets and blur must be >= 0")
	case s.Shadow != nil && (s.Shadow.Opacity < 0 || s.Shadow.Opacity > 1):
		return errors.New(errors.ErrCodeInvalidConfig, "shadow opacity must be within [0,1], got %g", s.Shadow.Opacity)
	}
	return nil
}
