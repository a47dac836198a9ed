package pipeline

import (
	"context"

	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/dataurl"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
)

// embedImages returns doc with every image source replaced by a data URL.
// rsvg-convert reads the document from stdin and cannot resolve relative or
// remote references, so rasterized output needs the bytes inline. doc itself
// is never modified; when every source already is a data URL, doc is
// returned as is.
func embedImages(ctx context.Context, doc *config.Document, loader imagesize.Loader) (*config.Document, error) {
	var out *config.Document
	loaded := make(map[string]string)

	for name, style := range doc.Styles {
		if style.Image == nil || dataurl.IsDataURL(*style.Image) {
			continue
		}
		src := *style.Image

		inline, ok := loaded[src]
		if !ok {
			if loader == nil {
				return nil, errors.New(errors.ErrCodeUnsupported, "style %q: cannot embed image %s without an image loader", name, src)
			}
			data, err := loader.Load(ctx, src)
			if err != nil {
				return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeImageSize), err, "style %q: embed image", name)
			}
			inline = dataurl.EncodeType(imagesize.MediaType(data), data)
			loaded[src] = inline
		}

		if out == nil {
			out = &config.Document{Layers: doc.Layers, Styles: make(config.StyleCollection, len(doc.Styles))}
			for k, v := range doc.Styles {
				out.Styles[k] = v
			}
		}
		style.Image = &inline
		out.Styles[name] = style
	}

	if out == nil {
		return doc, nil
	}
	return out, nil
}
