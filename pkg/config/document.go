package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
)

// Document pairs a structure with the styles its slots reference.
type Document struct {
	Layers Structure       `toml:"layers" yaml:"layers" json:"layers"`
	Styles StyleCollection `toml:"styles" yaml:"styles" json:"styles"`
}

// Build resolves the document into a canvas. See Build.
func (d *Document) Build(ctx context.Context, sizes imagesize.Provider, opts ...BuildOption) (*canvas.Canvas, error) {
	return Build(ctx, d.Layers, d.Styles, sizes, opts...)
}

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats, primary first.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat accepts a format name, a file extension or a media type.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if mt, _, ok := strings.Cut(s, ";"); ok {
		s = strings.TrimSpace(mt)
	}
	switch strings.TrimPrefix(s, ".") {
	case "toml", "application/toml":
		return FormatTOML, nil
	case "yaml", "yml", "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	case "json", "application/json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q (want toml, yaml or json)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer document format of %q", path)
	}
	return ParseFormat(ext)
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string { return "." + string(f) }

// Parse decodes a document. Shadow blur and opacity default to
// DefaultShadowBlur and DefaultShadowOpacity when omitted.
func Parse(data []byte, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
		applyShadowDefaults(&doc, md)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", f)
	}
	return &doc, nil
}

func applyShadowDefaults(doc *Document, md toml.MetaData) {
	for name, style := range doc.Styles {
		if style.Shadow == nil {
			continue
		}
		if !md.IsDefined("styles", name, "shadow", "blur") {
			style.Shadow.Blur = DefaultShadowBlur
		}
		if !md.IsDefined("styles", name, "shadow", "opacity") {
			style.Shadow.Opacity = DefaultShadowOpacity
		}
	}
}

// Marshal encodes a document.
func Marshal(doc *Document, f Format) ([]byte, error) {
	var (
		buf bytes.Buffer
		err error
	)
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return buf.Bytes(), nil
}

// Load reads path, expands it as a template with data, and parses it in the
// format implied by its extension.
func Load(path string, data TemplateData) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read document %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read document %s", path)
	}
	expanded, err := Template(raw, data)
	if err != nil {
		return nil, err
	}
	return Parse(expanded, f)
}
