package canvas

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// Kind names a layer variant.
type Kind string

// Layer kinds.
const (
	KindBackground Kind = "background"
	KindImage      Kind = "image"
	KindShape      Kind = "shape"
)

// Kinds lists every layer kind in declaration order.
var Kinds = []Kind{KindBackground, KindImage, KindShape}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k), nil }

// UnmarshalText accepts one of the known kinds.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, known := range Kinds {
		if string(text) == string(known) {
			*k = known
			return nil
		}
	}
	return fmt.Errorf("unknown layer kind %q (want background, image or shape)", text)
}

// Layer is one visual element in a Canvas stack. The set of implementations is
// closed: *Background, *Image and *BasicShape.
//
// A layer's policies are fixed once it is built. Its concrete geometry is
// resolved by the Canvas and handed to Render; layers never compute it.
type Layer interface {
	// Kind reports the variant.
	Kind() Kind

	// SizePolicy reports how the layer wants to be sized.
	SizePolicy() SizeOption

	// PositionPolicy reports how the layer wants to be placed.
	PositionPolicy() PositionOption

	// Render emits the layer's markup at the given geometry. Definitions that
	// must live in the document-wide defs block are returned separately and
	// may be nil. Every definition id incorporates id.
	Render(size Size, pos Position, id string) (elem, defs *etree.Element, err error)

	layer()
}

// ResolveSize applies l's size policy to the accumulated size of the layers above it.
func ResolveSize(l Layer, child Size) Size { return l.SizePolicy().Resolve(child) }

// ResolvePosition applies l's position policy within container.
func ResolvePosition(l Layer, container, own Size) Position {
	return l.PositionPolicy().Resolve(container, own)
}

func newElement(tag string, attrs ...string) *etree.Element {
	e := etree.NewElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		e.CreateAttr(attrs[i], attrs[i+1])
	}
	return e
}

// boxed creates tag with width/height/x/y set from the geometry.
func boxed(tag string, size Size, pos Position) *etree.Element {
	return newElement(tag,
		"width", strconv.Itoa(size.Width),
		"height", strconv.Itoa(size.Height),
		"x", strconv.Itoa(pos.X),
		"y", strconv.Itoa(pos.Y),
	)
}

func urlRef(id string) string { return "url(#" + id + ")" }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
