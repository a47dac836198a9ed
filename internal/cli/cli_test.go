package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/errors"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("FOOTLIGHTS_REDIS", "")

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		flag, output string
		want         string
		wantErr      bool
	}{
		{"", "", "svg", false},
		{"", "out.png", "png", false},
		{"", "OUT.PDF", "pdf", false},
		{"", "out.txt", "svg", false},
		{"png", "out.svg", "png", false},
		{"gif", "", "", true},
	}

	for _, tt := range tests {
		got, err := outputFormat(tt.flag, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("outputFormat(%q, %q) error = %v, wantErr %v", tt.flag, tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("outputFormat(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
	}
}

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"bg=#fff", "title=a=b", "empty="})
	if err != nil {
		t.Fatalf("parseVars: %v", err)
	}
	if vars["bg"] != "#fff" || vars["title"] != "a=b" || vars["empty"] != "" {
		t.Errorf("parseVars() = %v", vars)
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseVars([]string{bad}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("parseVars(%q) error = %v, want INVALID_CONFIG", bad, err)
		}
	}
}

func TestReadImage(t *testing.T) {
	path := writePNG(t, t.TempDir(), 4, 4)

	got, err := readImage(nil, path)
	if err != nil || !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("readImage(file) = %.40q, %v", got, err)
	}

	data, _ := os.ReadFile(path)
	got, err = readImage(bytes.NewReader(data), "")
	if err != nil || !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("readImage(stdin) = %.40q, %v", got, err)
	}

	if got, err := readImage(strings.NewReader(""), ""); got != "" || err != nil {
		t.Errorf("readImage(empty) = %q, %v", got, err)
	}

	if _, err := readImage(nil, filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("readImage(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderCommandToFile(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, 120, 80)
	out := filepath.Join(dir, "out.svg")

	if _, err := execute(t, nil, "render", img, "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="374" height="334">`) {
		t.Errorf("unexpected document head: %.120s", svg)
	}
	if !strings.Contains(svg, `href="data:image/png;base64,`) {
		t.Error("image should be embedded as a data URL")
	}
}

func TestRenderCommandStdinAndConfig(t *testing.T) {
	dir := t.TempDir()
	img, _ := os.ReadFile(writePNG(t, dir, 10, 10))
	doc := filepath.Join(dir, "stage.yaml")
	src := `layers:
  - {kind: background, id: bg, style: bg}
  - {kind: image, id: shot, style: shot}
styles:
  bg:
    size: fit-content(5)
    color: {pure: "{{ .Vars.bg }}"}
  shot:
    image: "{{ .Image }}"
`
	if err := os.WriteFile(doc, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, bytes.NewReader(img), "render", "-c", doc, "--set", "bg=navy", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">`) {
		t.Errorf("stdout = %.120s", out)
	}
	if !strings.Contains(out, `fill="navy"`) {
		t.Error("--set value not applied")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, 10, 10)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no image", []string{"render"}, errors.ErrCodeMissingAttribute},
		{"missing image file", []string{"render", filepath.Join(dir, "nope.png")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", img, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad set", []string{"render", img, "--set", "oops"}, errors.ErrCodeInvalidConfig},
		{"missing config", []string{"render", img, "-c", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"unknown config extension", []string{"render", img, "-c", filepath.Join(dir, "stage.ini")}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, nil, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "footlights.toml")

	if _, err := execute(t, nil, "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	doc, err := config.Load(path, config.TemplateData{Image: "x.png"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Layers) != 2 || *doc.Styles["image"].Image != "x.png" {
		t.Errorf("init wrote an unexpected document: %+v", doc)
	}

	if _, err := execute(t, nil, "init", path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("init over existing file error = %v, want INVALID_CONFIG", err)
	}
	if _, err := execute(t, nil, "init", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := execute(t, nil, "init", "-f", "yaml")
	if err != nil {
		t.Fatalf("init -f yaml: %v", err)
	}
	if _, err := config.Parse([]byte(out), config.FormatYAML); err != nil {
		t.Errorf("yaml output does not parse: %v\n%s", err, out)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, nil, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want, _ := cacheDir()
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrCodeStyleNotFound, "style %q not found", "bg")
	got := FormatError(err)
	if !strings.Contains(got, `style "bg" not found`) || !strings.Contains(got, "STYLE_NOT_FOUND") {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, nil, "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
			continue
		}
		if !strings.Contains(out, "footlights") {
			t.Errorf("completion %s script does not mention footlights", shell)
		}
	}
	if _, err := execute(t, nil, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestFormatFlagCompletion(t *testing.T) {
	out, err := execute(t, nil, "__complete", "render", "--format", "")
	if err != nil {
		t.Fatalf("__complete: %v", err)
	}
	for _, want := range []string{"svg", "png", "pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("render --format completions missing %q:\n%s", want, out)
		}
	}

	out, _ = execute(t, nil, "__complete", "init", "--format", "")
	if !strings.Contains(out, "yaml") {
		t.Errorf("init --format completions missing yaml:\n%s", out)
	}
}
