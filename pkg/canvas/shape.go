package canvas

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/footlights/pkg/errors"
)

// ShapeKind selects the geometry of a BasicShape.
type ShapeKind int

const (
	Rectangle ShapeKind = iota
)

// BasicShape is a flat-filled primitive. It defaults to a centered 100x100
// rectangle with no fill.
type BasicShape struct {
	shape    ShapeKind
	size     SizeOption
	position PositionOption
	fill     Color
}

// NewBasicShape returns a shape with default policies.
func NewBasicShape(shape ShapeKind) *BasicShape {
	return &BasicShape{
		shape:    shape,
		size:     AbsoluteSize(100, 100),
		position: Center(),
	}
}

// WithFill sets the fill color. An empty color leaves the attribute out.
func (s *BasicShape) WithFill(c Color) *BasicShape {
	s.fill = c
	return s
}

// WithSize overrides the default size policy.
func (s *BasicShape) WithSize(o SizeOption) *BasicShape {
	s.size = o
	return s
}

// WithPosition overrides the default position policy.
func (s *BasicShape) WithPosition(o PositionOption) *BasicShape {
	s.position = o
	return s
}

func (s *BasicShape) Kind() Kind                     { return KindShape }
func (s *BasicShape) SizePolicy() SizeOption         { return s.size }
func (s *BasicShape) PositionPolicy() PositionOption { return s.position }
func (s *BasicShape) layer()                         {}

// Render implements Layer.
func (s *BasicShape) Render(size Size, pos Position, id string) (*etree.Element, *etree.Element, error) {
	if s.shape != Rectangle {
		return nil, nil, errors.New(errors.ErrCodeUnimplemented, "shape %d (layer %s) cannot be rendered", s.shape, id)
	}
	rect := boxed("rect", size, pos)
	if s.fill != "" {
		rect.CreateAttr("fill", string(s.fill))
	}
	return rect, nil, nil
}
