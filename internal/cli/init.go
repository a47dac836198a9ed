package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/errors"
)

// initCommand creates the init command, which writes the default document.
func (c *CLI) initCommand() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default document to start from",
		Example: `  footlights init footlights.toml
  footlights init -f yaml > stage.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(cmd.Context(), cmd.OutOrStdout(), path, format, force)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: toml, yaml, json (default from file name, else toml)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	_ = cmd.RegisterFlagCompletionFunc("format", completeDocumentFormats)

	return cmd
}

func runInit(ctx context.Context, stdout io.Writer, path, flag string, force bool) error {
	format, err := documentFormat(flag, path)
	if err != nil {
		return err
	}
	data, err := config.Marshal(config.Default(), format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidConfig, "%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	loggerFromContext(ctx).Debug("wrote default document", "path", path, "format", format)

	printSuccess("Created %s", path)
	printNextStep("Render with it", "footlights render -c "+path+" image.png -o out.png")
	return nil
}

// documentFormat resolves the --format flag, falling back to the file
// extension and then to TOML.
func documentFormat(flag, path string) (config.Format, error) {
	if flag != "" {
		return config.ParseFormat(flag)
	}
	if path == "" {
		return config.FormatTOML, nil
	}
	return config.FormatFromPath(path)
}
