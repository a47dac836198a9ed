package config

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/matzehuels/footlights/pkg/canvas"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
)

var sizes = imagesize.Static{
	"a.png":              {Width: 200, Height: 100},
	DefaultImageTemplate: {Width: 400, Height: 300},
}

func failingSizes(err error) imagesize.Provider {
	return imagesize.Func(func(context.Context, string) (canvas.Size, error) { return canvas.Size{}, err })
}

func TestBuildSample(t *testing.T) {
	c, err := sampleDocument().Build(context.Background(), sizes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	size, placements := c.Layout()
	// image 200x100 + shadow clearance (5+21+1, 6+21+1) on both sides
	wantImage := canvas.Size{Width: 254, Height: 156}
	if placements[1].Size != wantImage {
		t.Errorf("image size = %v, want %v", placements[1].Size, wantImage)
	}
	if want := (canvas.Size{Width: 354, Height: 256}); size != want {
		t.Errorf("document size = %v, want %v", size, want)
	}
	if want := (canvas.Position{X: 3, Y: 4}); placements[1].Position != want {
		t.Errorf("image position = %v, want %v", placements[1].Position, want)
	}

	bg := placements[0].Layer.(*canvas.Background)
	if bg.Fill() != canvas.FillPure {
		t.Errorf("background fill = %v, want pure", bg.Fill())
	}
}

func TestBuildDefaultRenders(t *testing.T) {
	c, err := Default().Build(context.Background(), sizes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svg, err := c.RenderString()
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	for _, want := range []string{`id="gradient-0"`, `id="blur-0"`, `id="clip-1"`, `id="shadow-1"`, `rotate(35)`} {
		if !strings.Contains(svg, want) {
			t.Errorf("default document missing %s", want)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	probeErr := stderrors.New("unexpected EOF")

	tests := []struct {
		name     string
		doc      *Document
		sizes    imagesize.Provider
		code     errors.Code
		contains []string
	}{
		{
			name: "style not found",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindBackground, ID: "bg", Style: "nope"}},
				Styles: StyleCollection{},
			},
			code:     errors.ErrCodeStyleNotFound,
			contains: []string{`"nope"`, `"bg"`},
		},
		{
			name: "background without color",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindBackground, ID: "bg", Style: "s"}},
				Styles: StyleCollection{"s": {Blur: ptr(3.0)}},
			},
			code:     errors.ErrCodeMissingAttribute,
			contains: []string{"background", `"color"`, `style "s"`},
		},
		{
			name: "image without source",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Round: ptr(4)}},
			},
			code:     errors.ErrCodeMissingAttribute,
			contains: []string{"image", `"image"`, `"img"`},
		},
		{
			name: "image with empty source",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("")}},
			},
			code: errors.ErrCodeMissingAttribute,
		},
		{
			name: "image fit-content size",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("a.png"), Size: ptr(canvas.FitContent(3))}},
			},
			code:     errors.ErrCodeInvalidConfig,
			contains: []string{"fit-content(3)"},
		},
		{
			name: "provider failure",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("broken.png")}},
			},
			sizes:    failingSizes(probeErr),
			code:     errors.ErrCodeImageSize,
			contains: []string{"broken.png", "unexpected EOF"},
		},
		{
			name: "no provider",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("a.png")}},
			},
			sizes: imagesize.Provider(nil),
			code:  errors.ErrCodeImageSize,
		},
		{
			name: "two fill variants",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindBackground, ID: "bg", Style: "s"}},
				Styles: StyleCollection{"s": {Color: &Fill{Pure: "red", Radial: &RadialGradient{}}}},
			},
			code:     errors.ErrCodeInvalidConfig,
			contains: []string{`"bg"`, "exactly one"},
		},
		{
			name: "gradient without stops",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindBackground, ID: "bg", Style: "s"}},
				Styles: StyleCollection{"s": {Color: Linear(90)}},
			},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "shape gradient",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindShape, ID: "box", Style: "s"}},
				Styles: StyleCollection{"s": {Color: Linear(0, canvas.GradientStop{Color: "red", Offset: "0"})}},
			},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "negative round",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("a.png"), Round: ptr(-1)}},
			},
			code:     errors.ErrCodeInvalidConfig,
			contains: []string{`"img"`, "round"},
		},
		{
			name: "opacity out of range",
			doc: &Document{
				Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
				Styles: StyleCollection{"s": {Image: ptr("a.png"), Shadow: &Shadow{Opacity: 1.5}}},
			},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "duplicate id",
			doc: &Document{
				Layers: Structure{
					{Kind: canvas.KindShape, ID: "box", Style: "s"},
					{Kind: canvas.KindShape, ID: "box", Style: "s"},
				},
				Styles: StyleCollection{"s": {}},
			},
			code: errors.ErrCodeInvalidConfig,
		},
		{
			name: "unknown kind",
			doc: &Document{
				Layers: Structure{{Kind: canvas.Kind("circle"), ID: "c", Style: "s"}},
				Styles: StyleCollection{"s": {}},
			},
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := tt.sizes
			if provider == nil && tt.name != "no provider" {
				provider = sizes
			}
			c, err := tt.doc.Build(context.Background(), provider)
			if c != nil {
				t.Error("failed build should not return a canvas")
			}
			if !errors.Is(err, tt.code) {
				t.Fatalf("Build() error = %v, want %s", err, tt.code)
			}
			for _, s := range tt.contains {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("error %q should mention %s", err, s)
				}
			}
		})
	}
}

func TestBuildProviderErrorKeepsCause(t *testing.T) {
	cause := errors.New(errors.ErrCodeFileNotFound, "open x.png")
	doc := &Document{
		Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
		Styles: StyleCollection{"s": {Image: ptr("x.png")}},
	}
	_, err := doc.Build(context.Background(), failingSizes(cause))
	if !stderrors.Is(err, cause) {
		t.Errorf("provider error should be reachable via errors.Is: %v", err)
	}
}

func TestBuildAbsoluteImageSkipsProvider(t *testing.T) {
	doc := &Document{
		Layers: Structure{{Kind: canvas.KindImage, ID: "img", Style: "s"}},
		Styles: StyleCollection{"s": {Image: ptr("https://example.com/big.png"), Size: ptr(canvas.AbsoluteSize(64, 48))}},
	}
	c, err := doc.Build(context.Background(), failingSizes(stderrors.New("should not be called")))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	size, _ := c.Layout()
	if size != (canvas.Size{Width: 64, Height: 48}) {
		t.Errorf("document size = %v, want 64x48", size)
	}
}

func TestBuildShape(t *testing.T) {
	doc := &Document{
		Layers: Structure{
			{Kind: canvas.KindShape, ID: "plain", Style: "plain"},
			{Kind: canvas.KindShape, ID: "dot", Style: "dot"},
		},
		Styles: StyleCollection{
			"plain": {},
			"dot": {
				Color:    Pure("tomato"),
				Size:     ptr(canvas.AbsoluteSize(10, 10)),
				Position: ptr(canvas.AbsolutePosition(1, 1)),
			},
		},
	}
	c, err := doc.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svg, err := c.RenderString()
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">` +
		`<rect width="100" height="100" x="0" y="0"/>` +
		`<rect width="10" height="10" x="1" y="1" fill="tomato"/></svg>`
	if svg != want {
		t.Errorf("RenderString() =\n%s\nwant\n%s", svg, want)
	}
}

func TestBuildRadialFailsAtRender(t *testing.T) {
	doc := &Document{
		Layers: Structure{{Kind: canvas.KindBackground, ID: "bg", Style: "s"}},
		Styles: StyleCollection{"s": {Color: &Fill{Radial: &RadialGradient{}}}},
	}
	c, err := doc.Build(context.Background(), nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := c.RenderString(); !errors.Is(err, errors.ErrCodeUnimplemented) {
		t.Errorf("RenderString() error = %v, want UNIMPLEMENTED", err)
	}
}

func TestBuildOverrides(t *testing.T) {
	doc := &Document{
		Layers: Structure{
			{Kind: canvas.KindBackground, ID: "bg", Style: "bg"},
			{Kind: canvas.KindImage, ID: "img", Style: "img"},
		},
		Styles: StyleCollection{
			"bg":  {Color: Pure("black"), Size: ptr(canvas.FitContent(10))},
			"img": {Image: ptr("a.png")},
		},
	}
	c, err := doc.Build(context.Background(), sizes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	size, placements := c.Layout()
	if size != (canvas.Size{Width: 220, Height: 120}) {
		t.Errorf("document size = %v, want 220x120", size)
	}
	if placements[1].Position != (canvas.Position{X: 10, Y: 10}) {
		t.Errorf("image position = %v, want (10,10)", placements[1].Position)
	}
}
