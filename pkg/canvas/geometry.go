package canvas

import "fmt"

// Size is a width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// String returns the size as "WxH".
func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Position is an x/y offset in pixels from the top-left of the containing frame.
// The canvas has no negative coordinate space.
type Position struct {
	X int
	Y int
}

// String returns the position as "(X,Y)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Color is any fill-syntax string: a named color, hex, rgb()/hsl(), or a
// url(#id) reference. It is not validated.
type Color string

// String returns the color unchanged.
func (c Color) String() string { return string(c) }
