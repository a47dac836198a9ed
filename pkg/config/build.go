package config

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/dataurl"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
)

// BuildOption configures Build.
type BuildOption func(*builder)

// WithLogger sets the logger used by Build and by the canvas it returns.
func WithLogger(l *log.Logger) BuildOption {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

type builder struct {
	sizes  imagesize.Provider
	logger *log.Logger
}

// Build resolves structure against styles into a canvas, one layer per slot
// in order. Image dimensions come from sizes unless the slot's style pins an
// absolute size.
//
// Build fails on the first bad slot and returns no canvas. Errors name the
// slot, its kind and style, and the offending attribute:
//
//   - STYLE_NOT_FOUND when a slot references an undefined style
//   - MISSING_ATTRIBUTE when a kind's required attribute is absent
//   - INVALID_CONFIG for malformed values or duplicate slot ids
//   - IMAGE_SIZE when sizes fails, with the provider error as cause
func Build(ctx context.Context, structure Structure, styles StyleCollection, sizes imagesize.Provider, opts ...BuildOption) (*canvas.Canvas, error) {
	b := &builder{sizes: sizes, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(b)
	}

	c := canvas.New(canvas.WithLogger(b.logger))
	seen := make(map[string]bool, len(structure))
	for _, slot := range structure {
		if slot.ID != "" && seen[slot.ID] {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "duplicate slot id %q", slot.ID)
		}
		seen[slot.ID] = true

		style, ok := styles[slot.Style]
		if !ok {
			return nil, errors.New(errors.ErrCodeStyleNotFound, "slot %q (%s): style %q not found", slot.ID, slot.Kind, slot.Style)
		}
		if err := style.validate(); err != nil {
			return nil, slotError(slot, err)
		}

		l, err := b.layer(ctx, slot, style)
		if err != nil {
			return nil, err
		}
		b.logger.Debug("resolved slot", "id", slot.ID, "kind", slot.Kind, "style", slot.Style)
		c.Push(l)
	}
	return c, nil
}

func (b *builder) layer(ctx context.Context, slot Slot, style Style) (canvas.Layer, error) {
	switch slot.Kind {
	case canvas.KindBackground:
		return b.background(slot, style)
	case canvas.KindImage:
		return b.image(ctx, slot, style)
	case canvas.KindShape:
		return b.shape(slot, style)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "slot %q: unknown layer kind %q", slot.ID, slot.Kind)
}

func (b *builder) background(slot Slot, style Style) (canvas.Layer, error) {
	if style.Color == nil {
		return nil, missing(slot, "color")
	}
	bg, err := style.Color.background()
	if err != nil {
		return nil, slotError(slot, err)
	}
	if style.Blur != nil {
		bg.WithBlur(*style.Blur)
	}
	if style.Size != nil {
		bg.WithSize(*style.Size)
	}
	if style.Position != nil {
		bg.WithPosition(*style.Position)
	}
	return bg, nil
}

func (b *builder) image(ctx context.Context, slot Slot, style Style) (canvas.Layer, error) {
	if style.Image == nil || *style.Image == "" {
		return nil, missing(slot, "image")
	}
	src := *style.Image

	var size canvas.Size
	switch {
	case style.Size != nil && style.Size.Kind == canvas.SizeAbsolute:
		size = canvas.Size{Width: style.Size.Width, Height: style.Size.Height}
	case style.Size != nil:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"slot %q (image, style %q): size must be absolute(w,h), got %s", slot.ID, slot.Style, style.Size)
	case b.sizes == nil:
		return nil, errors.New(errors.ErrCodeImageSize,
			"slot %q (image, style %q): no image size provider for %s", slot.ID, slot.Style, dataurl.Abbrev(src))
	default:
		var err error
		size, err = b.sizes.ImageSize(ctx, src)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeImageSize, err,
				"slot %q (image, style %q): size of %s", slot.ID, slot.Style, dataurl.Abbrev(src))
		}
	}

	img := canvas.NewImage(src, size)
	if style.Round != nil {
		img.WithRound(*style.Round)
	}
	if style.Shadow != nil {
		img.WithShadow(style.Shadow.DropShadow())
	}
	if style.Position != nil {
		img.WithPosition(*style.Position)
	}
	return img, nil
}

func (b *builder) shape(slot Slot, style Style) (canvas.Layer, error) {
	shape := canvas.NewBasicShape(canvas.Rectangle)
	if style.Color != nil {
		if style.Color.Linear != nil || style.Color.Radial != nil {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"slot %q (shape, style %q): shapes only take a pure color", slot.ID, slot.Style)
		}
		shape.WithFill(style.Color.Pure)
	}
	if style.Size != nil {
		shape.WithSize(*style.Size)
	}
	if style.Position != nil {
		shape.WithPosition(*style.Position)
	}
	return shape, nil
}

func missing(slot Slot, attr string) error {
	return errors.New(errors.ErrCodeMissingAttribute,
		"slot %q (%s, style %q): missing attribute %q", slot.ID, slot.Kind, slot.Style, attr)
}

// slotError prefixes a style validation error with the slot it came from,
// keeping its code.
func slotError(slot Slot, err error) error {
	return errors.New(errors.GetCodeOr(err, errors.ErrCodeInvalidConfig),
		"slot %q (%s, style %q): %s", slot.ID, slot.Kind, slot.Style, errors.UserMessage(err))
}
