package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// SizeKind selects the SizeOption variant.
type SizeKind int

const (
	// SizeFitContent wraps the accumulated size of the layers above plus padding.
	SizeFitContent SizeKind = iota
	// SizeAbsolute ignores the layers above.
	SizeAbsolute
)

// SizeOption is the size policy a layer reports about itself.
// The zero value is FitContent(0).
type SizeOption struct {
	Kind    SizeKind
	Padding int // FitContent only
	Width   int // Absolute only
	Height  int // Absolute only
}

// FitContent sizes a layer to its content plus padding on every side.
func FitContent(padding int) SizeOption {
	return SizeOption{Kind: SizeFitContent, Padding: padding}
}

// AbsoluteSize fixes a layer's size regardless of its content.
func AbsoluteSize(width, height int) SizeOption {
	return SizeOption{Kind: SizeAbsolute, Width: width, Height: height}
}

// Resolve turns the policy into a concrete size given the accumulated size of
// every layer stacked above.
func (o SizeOption) Resolve(child Size) Size {
	if o.Kind == SizeAbsolute {
		return Size{Width: o.Width, Height: o.Height}
	}
	return Size{
		Width:  child.Width + 2*o.Padding,
		Height: child.Height + 2*o.Padding,
	}
}

// String returns the textual form used in configuration files.
func (o SizeOption) String() string {
	if o.Kind == SizeAbsolute {
		return fmt.Sprintf("absolute(%d,%d)", o.Width, o.Height)
	}
	return fmt.Sprintf("fit-content(%d)", o.Padding)
}

// MarshalText implements encoding.TextMarshaler.
func (o SizeOption) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses "fit-content(P)" or "absolute(W,H)".
func (o *SizeOption) UnmarshalText(text []byte) error {
	name, args, err := parseCall(string(text))
	if err != nil {
		return err
	}
	switch name {
	case "fit-content":
		if len(args) > 1 {
			return fmt.Errorf("fit-content takes at most one argument, got %d", len(args))
		}
		padding := 0
		if len(args) == 1 {
			padding = args[0]
		}
		*o = FitContent(padding)
	case "absolute":
		if len(args) != 2 {
			return fmt.Errorf("absolute size takes two arguments, got %d", len(args))
		}
		*o = AbsoluteSize(args[0], args[1])
	default:
		return fmt.Errorf("unknown size option %q (want fit-content(p) or absolute(w,h))", name)
	}
	return nil
}

// PositionKind selects the PositionOption variant.
type PositionKind int

const (
	// PositionCenter centers a layer within the footprint of the layer beneath it.
	PositionCenter PositionKind = iota
	// PositionAbsolute places a layer at a fixed offset.
	PositionAbsolute
)

// PositionOption is the position policy a layer reports about itself.
// The zero value is Center.
type PositionOption struct {
	Kind PositionKind
	X    int // Absolute only
	Y    int // Absolute only
}

// Center centers a layer in its container.
func Center() PositionOption { return PositionOption{Kind: PositionCenter} }

// AbsolutePosition places a layer at (x, y).
func AbsolutePosition(x, y int) PositionOption {
	return PositionOption{Kind: PositionAbsolute, X: x, Y: y}
}

// Resolve turns the policy into a concrete position given the container size
// and the layer's own resolved size. Centering truncates after dividing, so an
// odd difference biases toward the origin; a layer larger than its container
// is pinned to the origin.
func (o PositionOption) Resolve(container, own Size) Position {
	if o.Kind == PositionAbsolute {
		return Position{X: o.X, Y: o.Y}
	}
	x := int(float64(container.Width-own.Width) / 2)
	y := int(float64(container.Height-own.Height) / 2)
	return Position{X: max(x, 0), Y: max(y, 0)}
}

// String returns the textual form used in configuration files.
func (o PositionOption) String() string {
	if o.Kind == PositionAbsolute {
		return fmt.Sprintf("absolute(%d,%d)", o.X, o.Y)
	}
	return "center"
}

// MarshalText implements encoding.TextMarshaler.
func (o PositionOption) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses "center" or "absolute(X,Y)".
func (o *PositionOption) UnmarshalText(text []byte) error {
	name, args, err := parseCall(string(text))
	if err != nil {
		return err
	}
	switch name {
	case "center":
		if len(args) != 0 {
			return fmt.Errorf("center takes no arguments")
		}
		*o = Center()
	case "absolute":
		if len(args) != 2 {
			return fmt.Errorf("absolute position takes two arguments, got %d", len(args))
		}
		*o = AbsolutePosition(args[0], args[1])
	default:
		return fmt.Errorf("unknown position option %q (want center or absolute(x,y))", name)
	}
	return nil
}

// parseCall splits "name(a, b)" into its lower-cased name and non-negative
// integer arguments. A bare "name" has no arguments.
func parseCall(s string) (string, []int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, fmt.Errorf("malformed option %q: missing closing parenthesis", s)
	}
	name := strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return name, nil, nil
	}

	parts := strings.Split(inner, ",")
	args := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return "", nil, fmt.Errorf("malformed option %q: %w", s, err)
		}
		if n < 0 {
			return "", nil, fmt.Errorf("malformed option %q: negative value %d", s, n)
		}
		args = append(args, n)
	}
	return name, args, nil
}
