package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for footlights.

  $ source <(footlights completion bash)
  $ footlights completion zsh > "${fpath[1]}/_footlights"
  $ footlights completion fish | source
  PS> footlights completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeOutputFormats completes the render --format flag.
func completeOutputFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		pipeline.FormatSVG + "\tvector markup",
		pipeline.FormatPNG + "\traster image (rsvg-convert)",
		pipeline.FormatPDF + "\tvector document (rsvg-convert)",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeDocumentFormats completes the init --format flag.
func completeDocumentFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	formats := make([]string, len(config.Formats))
	for i, f := range config.Formats {
		formats[i] = string(f)
	}
	return formats, cobra.ShellCompDirectiveNoFileComp
}

// completeDocumentFiles restricts file completion to document extensions.
func completeDocumentFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml", "yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
}
