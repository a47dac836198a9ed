package canvas

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/footlights/pkg/errors"
)

// SVGNamespace is the namespace of the root document element.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Option configures a Canvas.
type Option func(*Canvas)

// WithLogger sets the logger that receives debug events from the layout passes.
func WithLogger(l *log.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.logger = l
		}
	}
}

// Canvas is an ordered stack of layers. Index 0 is the bottom and is painted
// first; the last pushed layer is on top.
type Canvas struct {
	layers []Layer
	logger *log.Logger
}

// New creates an empty canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Push adds l on top of the stack. The canvas takes ownership of l.
func (c *Canvas) Push(l Layer) {
	c.layers = append(c.layers, l)
}

// Len returns the number of layers.
func (c *Canvas) Len() int { return len(c.layers) }

// Layers returns the stack bottom first.
func (c *Canvas) Layers() []Layer {
	return append([]Layer(nil), c.layers...)
}

// Placement is the resolved geometry of one layer.
type Placement struct {
	Layer    Layer
	ID       string
	Size     Size
	Position Position
}

// Layout resolves every layer's geometry and returns the document size with
// the placements bottom first.
//
// Sizes are resolved from the top down, each layer wrapping the size
// accumulated above it; the bottom layer's size is the document size.
// Positions are resolved from the bottom up, each layer placed within the
// footprint of the one beneath it. The bottom layer has no container and is
// pinned to the origin unless it asks for an absolute position.
func (c *Canvas) Layout() (Size, []Placement) {
	placements := make([]Placement, len(c.layers))

	var accumulated Size
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		size := ResolveSize(l, accumulated)
		c.logger.Debug("size pass", "index", i, "kind", l.Kind(), "policy", l.SizePolicy(), "child", accumulated, "size", size)
		placements[i] = Placement{Layer: l, ID: strconv.Itoa(i), Size: size}
		accumulated = size
	}

	var container Size
	for i := range placements {
		p := &placements[i]
		policy := p.Layer.PositionPolicy()
		if i == 0 && policy.Kind == PositionCenter {
			p.Position = Position{}
		} else {
			p.Position = ResolvePosition(p.Layer, container, p.Size)
		}
		c.logger.Debug("position pass", "index", i, "kind", p.Layer.Kind(), "policy", policy, "container", container, "position", p.Position)
		container = p.Size
	}

	return accumulated, placements
}

// Render lays out the stack and assembles the document: a root svg element
// sized to the document, the layers in paint order, and a shared defs block
// when any layer hoisted definitions. Any layer that fails to render fails
// the whole document.
func (c *Canvas) Render() (*etree.Element, error) {
	size, placements := c.Layout()

	root := newElement("svg",
		"xmlns", SVGNamespace,
		"width", strconv.Itoa(size.Width),
		"height", strconv.Itoa(size.Height),
	)
	defs := etree.NewElement("defs")

	for _, p := range placements {
		elem, hoisted, err := p.Layer.Render(p.Size, p.Position, p.ID)
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s layer %s", p.Layer.Kind(), p.ID)
		}
		c.logger.Debug("render layer", "index", p.ID, "kind", p.Layer.Kind(), "size", p.Size, "position", p.Position, "defs", hoisted != nil)
		root.AddChild(elem)
		if hoisted != nil {
			defs.AddChild(hoisted)
		}
	}

	if len(defs.ChildElements()) > 0 {
		root.AddChild(defs)
	}
	return root, nil
}

// RenderString renders the document and serializes it to markup.
func (c *Canvas) RenderString() (string, error) {
	root, err := c.Render()
	if err != nil {
		return "", err
	}
	doc := etree.NewDocument()
	doc.SetRoot(root)
	s, err := doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize document")
	}
	return s, nil
}
