package canvas

import (
	"strconv"

	"github.com/beevik/etree"
)

// DefaultShadowOpacity is the flood opacity of a drop shadow when none is given.
const DefaultShadowOpacity = 0.6

// DropShadow is an feDropShadow effect under an image.
type DropShadow struct {
	X       int     // horizontal offset
	Y       int     // vertical offset
	Blur    int     // Gaussian standard deviation
	Opacity float64 // flood opacity
}

// NewDropShadow returns a shadow with DefaultShadowOpacity.
func NewDropShadow(x, y, blur int) DropShadow {
	return DropShadow{X: x, Y: y, Blur: blur, Opacity: DefaultShadowOpacity}
}

// Clearance returns the padding needed on each side of the image, per axis,
// so the shadow is not clipped. A Gaussian blur reaches at most 3σ+1 pixels;
// the offset extends that on one side, and the same padding is applied to
// both sides to keep the image centered.
func (d DropShadow) Clearance() (x, y int) {
	return d.X + 3*d.Blur + 1, d.Y + 3*d.Blur + 1
}

// Image is an external raster reference: a file path, URL or data URL.
// Its size policy is the intrinsic size plus shadow clearance.
type Image struct {
	src      string
	size     Size
	round    int
	rounded  bool
	shadow   *DropShadow
	position PositionOption
}

// NewImage returns an image of the given intrinsic size.
func NewImage(src string, size Size) *Image {
	return &Image{src: src, size: size, position: Center()}
}

// WithRound clips the image to a rectangle with the given corner radius.
func (i *Image) WithRound(radius int) *Image {
	i.round = radius
	i.rounded = true
	return i
}

// WithShadow adds a drop shadow.
func (i *Image) WithShadow(d DropShadow) *Image {
	i.shadow = &d
	return i
}

// WithPosition overrides the default center policy.
func (i *Image) WithPosition(o PositionOption) *Image {
	i.position = o
	return i
}

// Source returns the image reference.
func (i *Image) Source() string { return i.src }

// Padding returns the shadow clearance on each axis, or zero without a shadow.
func (i *Image) Padding() (x, y int) {
	if i.shadow == nil {
		return 0, 0
	}
	return i.shadow.Clearance()
}

func (i *Image) Kind() Kind { return KindImage }

func (i *Image) SizePolicy() SizeOption {
	px, py := i.Padding()
	return AbsoluteSize(i.size.Width+2*px, i.size.Height+2*py)
}

func (i *Image) PositionPolicy() PositionOption { return i.position }
func (i *Image) layer()                         {}

// Render implements Layer. Clip path and shadow filter stay inside the
// image's own frame; nothing is hoisted.
func (i *Image) Render(size Size, pos Position, id string) (*etree.Element, *etree.Element, error) {
	px, py := i.Padding()
	content := Size{
		Width:  max(size.Width-2*px, 0),
		Height: max(size.Height-2*py, 0),
	}
	offset := Position{X: px, Y: py}
	clipID := "clip-" + id
	shadowID := "shadow-" + id

	frame := boxed("svg", size, pos)

	if i.rounded || i.shadow != nil {
		defs := frame.CreateElement("defs")
		if i.rounded {
			clip := defs.CreateElement("clipPath")
			clip.CreateAttr("id", clipID)
			rect := boxed("rect", content, offset)
			rect.CreateAttr("rx", strconv.Itoa(i.round))
			clip.AddChild(rect)
		}
		if i.shadow != nil {
			filter := defs.CreateElement("filter")
			filter.CreateAttr("id", shadowID)
			filter.AddChild(newElement("feDropShadow",
				"dx", strconv.Itoa(i.shadow.X),
				"dy", strconv.Itoa(i.shadow.Y),
				"stdDeviation", strconv.Itoa(i.shadow.Blur),
				"flood-opacity", formatFloat(i.shadow.Opacity),
			))
		}
	}

	if i.shadow != nil {
		rect := boxed("rect", content, offset)
		rect.CreateAttr("rx", strconv.Itoa(i.round))
		rect.CreateAttr("filter", urlRef(shadowID))
		frame.AddChild(rect)
	}

	img := boxed("image", content, offset)
	img.CreateAttr("href", i.src)
	if i.rounded {
		img.CreateAttr("clip-path", urlRef(clipID))
	}
	frame.AddChild(img)

	return frame, nil, nil
}
