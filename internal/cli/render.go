package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/dataurl"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/imagesize"
	"github.com/matzehuels/footlights/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config   string   // document path; the default document when empty
	output   string   // output file; stdout when empty or "-"
	format   string   // svg, png or pdf; inferred from output when empty
	scale    float64  // PNG pixel density
	vars     []string // key=value template variables
	noCache  bool     // bypass the artifact and image size caches
	noRemote bool     // refuse http(s) image sources
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [image]",
		Short: "Render an image onto a styled canvas",
		Long: `Render composes the document's layers into SVG, PNG or PDF.

The image comes from the argument or, when none is given, from stdin. It is
passed to the document template as {{ .Image }} (a data URL). Without -c the
default document is used: a blurred gradient behind the rounded, shadowed
image.`,
		Example: `  footlights render screenshot.png -o out.png
  cat screenshot.png | footlights render -c stage.toml > out.svg
  footlights render -c stage.yaml --set accent=#ff8800 shot.png -o out.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var image string
			if len(args) == 1 {
				image = args[0]
			}
			return c.runRender(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), image, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "document file (.toml, .yaml, .yml, .json)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg, png, pdf (default from --output, else svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	cmd.Flags().StringArrayVar(&opts.vars, "set", nil, "template variable key=value, available as {{ .Vars.key }} (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noRemote, "no-remote", false, "refuse http(s) image sources")
	_ = cmd.RegisterFlagCompletionFunc("format", completeOutputFormats)
	_ = cmd.RegisterFlagCompletionFunc("config", completeDocumentFiles)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdin io.Reader, stdout io.Writer, imagePath string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	vars, err := parseVars(opts.vars)
	if err != nil {
		return err
	}
	image, err := readImage(stdin, imagePath)
	if err != nil {
		return err
	}
	if image == "" && opts.config == "" {
		return errors.New(errors.ErrCodeMissingAttribute, "no input image: pass a file or pipe one to stdin")
	}

	doc, baseDir, err := loadDocument(opts.config, config.TemplateData{Image: image, Vars: vars})
	if err != nil {
		return err
	}

	cache, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer cache.Close()

	proberOpts := []imagesize.Option{imagesize.WithBaseDir(baseDir), imagesize.WithLogger(logger)}
	if !opts.noRemote {
		proberOpts = append(proberOpts, imagesize.WithRemote(nil, cache))
	}
	runner := pipeline.NewRunner(cache, imagesize.NewProber(proberOpts...), logger)

	toFile := opts.output != "" && opts.output != "-"
	prog := newProgress(logger)

	var spinner *Spinner
	if toFile && format != pipeline.FormatSVG {
		spinner = newSpinnerWithContext(ctx, "Rendering "+format+"...")
		spinner.Start()
	}
	result, err := runner.Render(ctx, doc, pipeline.Options{
		Format:  format,
		Scale:   opts.scale,
		NoCache: opts.noCache,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if !toFile {
		_, err := stdout.Write(result.Artifact)
		return err
	}
	if err := os.WriteFile(opts.output, result.Artifact, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	prog.done("Wrote " + opts.output)

	printSuccess("Rendered %s", strings.ToUpper(format))
	printFile(opts.output)
	printStats(result)
	return nil
}

// outputFormat resolves the --format flag, falling back to the output
// file's extension and then to svg.
func outputFormat(flag, output string) (string, error) {
	format := flag
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if !pipeline.ValidFormats[format] {
			format = pipeline.FormatSVG
		}
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// parseVars turns repeated --set key=value flags into template variables.
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "--set %q: want key=value", kv)
		}
		vars[k] = v
	}
	return vars, nil
}

// readImage returns the input image as a data URL: the file at path when one
// is given, otherwise whatever is piped to stdin. It returns "" when there is
// no input.
func readImage(stdin io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read image %s", path)
		}
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "read image %s", path)
		}
		return dataurl.Encode(data), nil
	}

	if stdin == nil || isTerminal(stdin) {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "read stdin")
	}
	if len(data) == 0 {
		return "", nil
	}
	return dataurl.Encode(data), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadDocument loads the document at path, or the default document when path
// is empty, expanding it with data. It also returns the directory relative
// image paths resolve against.
func loadDocument(path string, data config.TemplateData) (*config.Document, string, error) {
	if path != "" {
		doc, err := config.Load(path, data)
		return doc, filepath.Dir(path), err
	}

	raw, err := config.Marshal(config.Default(), config.FormatTOML)
	if err != nil {
		return nil, "", err
	}
	expanded, err := config.Template(raw, data)
	if err != nil {
		return nil, "", err
	}
	doc, err := config.Parse(expanded, config.FormatTOML)
	if err != nil {
		return nil, "", fmt.Errorf("default document: %w", err)
	}
	return doc, "", nil
}
