package render

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/footlights/pkg/errors"
)

// Rasterizer is the external tool used for PNG and PDF output.
const Rasterizer = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the pixel
// dimensions; scale must be positive.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be > 0, got %g", scale)
	}
	return rsvgConvert(svg, "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

// Available reports whether the rasterizer is on PATH.
func Available() bool {
	_, err := exec.LookPath(Rasterizer)
	return err == nil
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	bin, err := exec.LookPath(Rasterizer)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs %s; %s", format, Rasterizer, installHint)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", Rasterizer, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
