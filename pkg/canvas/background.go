package canvas

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/footlights/pkg/errors"
)

// DefaultBackgroundPadding is the margin a background keeps around the layers
// stacked on top of it.
const DefaultBackgroundPadding = 100

// FillKind selects how a Background is painted.
type FillKind int

const (
	FillPure FillKind = iota
	FillLinear
	FillRadial
)

// String returns the configuration name of the fill kind.
func (k FillKind) String() string {
	switch k {
	case FillLinear:
		return "linear"
	case FillRadial:
		return "radial"
	default:
		return "pure"
	}
}

// GradientStop is one color stop of a gradient. Offset is passed through
// verbatim, e.g. "0%" or "0.5".
type GradientStop struct {
	Color  Color  `toml:"color" yaml:"color" json:"color"`
	Offset string `toml:"offset" yaml:"offset" json:"offset"`
}

// Background paints the area under everything stacked above it. By default it
// wraps its content with DefaultBackgroundPadding and centers itself.
type Background struct {
	fill     FillKind
	color    Color
	stops    []GradientStop
	degree   float64
	blur     float64
	size     SizeOption
	position PositionOption
}

func newBackground(fill FillKind) *Background {
	return &Background{
		fill:     fill,
		size:     FitContent(DefaultBackgroundPadding),
		position: Center(),
	}
}

// NewBackground returns a plain white background.
func NewBackground() *Background { return NewPureBackground("white") }

// NewPureBackground returns a solid fill background.
func NewPureBackground(color Color) *Background {
	b := newBackground(FillPure)
	b.color = color
	return b
}

// NewLinearGradientBackground returns a background filled with a linear
// gradient rotated by degree. Stops keep their order.
func NewLinearGradientBackground(stops []GradientStop, degree float64) *Background {
	b := newBackground(FillLinear)
	b.stops = append([]GradientStop(nil), stops...)
	b.degree = degree
	return b
}

// NewRadialBackground returns a radial gradient background. Radial gradients
// cannot be rendered yet; Render fails with ErrCodeUnimplemented.
func NewRadialBackground() *Background { return newBackground(FillRadial) }

// WithBlur sets the Gaussian blur standard deviation in pixels. Zero disables it.
func (b *Background) WithBlur(stdDev float64) *Background {
	b.blur = stdDev
	return b
}

// WithSize overrides the default fit-content policy.
func (b *Background) WithSize(o SizeOption) *Background {
	b.size = o
	return b
}

// WithPosition overrides the default center policy.
func (b *Background) WithPosition(o PositionOption) *Background {
	b.position = o
	return b
}

// Fill reports the fill kind.
func (b *Background) Fill() FillKind { return b.fill }

func (b *Background) Kind() Kind                     { return KindBackground }
func (b *Background) SizePolicy() SizeOption         { return b.size }
func (b *Background) PositionPolicy() PositionOption { return b.position }
func (b *Background) layer()                         {}

// Render implements Layer. A blurred linear background hoists its filter into
// the document defs.
func (b *Background) Render(size Size, pos Position, id string) (*etree.Element, *etree.Element, error) {
	switch b.fill {
	case FillPure:
		rect := boxed("rect", size, pos)
		rect.CreateAttr("fill", string(b.color))
		return rect, nil, nil
	case FillLinear:
		return b.renderLinear(size, pos, id)
	default:
		return nil, nil, errors.New(errors.ErrCodeUnimplemented, "%s background (layer %s) cannot be rendered", b.fill, id)
	}
}

func (b *Background) renderLinear(size Size, pos Position, id string) (*etree.Element, *etree.Element, error) {
	gradientID := "gradient-" + id

	frame := boxed("svg", size, pos)
	defs := frame.CreateElement("defs")
	gradient := defs.CreateElement("linearGradient")
	gradient.CreateAttr("id", gradientID)
	gradient.CreateAttr("gradientTransform", "rotate("+formatFloat(b.degree)+")")
	for _, s := range b.stops {
		gradient.AddChild(newElement("stop", "offset", s.Offset, "stop-color", string(s.Color)))
	}

	var hoisted *etree.Element
	if b.blur > 0 {
		blurID := "blur-" + id
		hoisted = blurFilter(blurID, b.blur)
		frame.AddChild(newElement("rect",
			"width", "100%",
			"height", "100%",
			"fill", urlRef(gradientID),
			"filter", urlRef(blurID),
		))
	}

	frame.AddChild(newElement("rect",
		"width", "100%",
		"height", "100%",
		"fill", urlRef(gradientID),
	))
	return frame, hoisted, nil
}

// blurFilter blurs the source and then snaps alpha back to opaque so the
// edges of the blurred area do not fade out.
func blurFilter(id string, stdDev float64) *etree.Element {
	filter := newElement("filter", "id", id)
	filter.AddChild(newElement("feGaussianBlur", "stdDeviation", formatFloat(stdDev)))
	transfer := filter.CreateElement("feComponentTransfer")
	transfer.AddChild(newElement("feFuncA", "type", "discrete", "tableValues", "1 1"))
	return filter
}
