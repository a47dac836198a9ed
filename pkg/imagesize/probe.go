package imagesize

import (
	"bufio"
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
)

const sniffLen = 512

// ProbeReader reads just enough of r to determine the image dimensions.
func ProbeReader(r io.Reader) (canvas.Size, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	if looksLikeSVG(head) {
		return probeSVG(br)
	}

	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		return canvas.Size{}, errors.Wrap(errors.ErrCodeUnsupported, err, "decode image header")
	}
	return canvas.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

func looksLikeSVG(head []byte) bool {
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(head, []byte("<?xml")) ||
		bytes.HasPrefix(head, []byte("<svg")) ||
		bytes.HasPrefix(head, []byte("<!--"))
}

func probeSVG(r io.Reader) (canvas.Size, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return canvas.Size{}, errors.Wrap(errors.ErrCodeUnsupported, err, "parse svg")
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return canvas.Size{}, errors.New(errors.ErrCodeUnsupported, "document root is not <svg>")
	}

	w, wok := svgLength(root.SelectAttrValue("width", ""))
	h, hok := svgLength(root.SelectAttrValue("height", ""))
	if wok && hok {
		return canvas.Size{Width: w, Height: h}, nil
	}

	fields := strings.FieldsFunc(root.SelectAttrValue("viewBox", ""), func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 4 {
		vw, err1 := strconv.ParseFloat(fields[2], 64)
		vh, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 == nil && err2 == nil && vw >= 0 && vh >= 0 {
			return canvas.Size{Width: int(math.Round(vw)), Height: int(math.Round(vh))}, nil
		}
	}
	return canvas.Size{}, errors.New(errors.ErrCodeUnsupported, "svg has no intrinsic size")
}

// svgLength parses an absolute length such as "120", "120px" or "99.5".
// Relative units are rejected.
func svgLength(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}
