package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crawlviz/pkg/layout"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	var noDesc bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for crawlviz.

Bash:
  $ source <(crawlviz completion bash)
  $ crawlviz completion bash > /etc/bash_completion.d/crawlviz

Zsh:
  $ crawlviz completion zsh > "${fpath[1]}/_crawlviz"

Fish:
  $ crawlviz completion fish > ~/.config/fish/completions/crawlviz.fish

PowerShell:
  PS> crawlviz completion powershell | Out-String | Invoke-Expression

Layout kinds and output formats complete too, e.g. 'crawlviz render g.json -t <TAB>'.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.out, !noDesc)
			case "zsh":
				if noDesc {
					return root.GenZshCompletionNoDesc(c.out)
				}
				return root.GenZshCompletion(c.out)
			case "fish":
				return root.GenFishCompletion(c.out, !noDesc)
			case "powershell":
				if noDesc {
					return root.GenPowerShellCompletion(c.out)
				}
				return root.GenPowerShellCompletionWithDesc(c.out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
	cmd.Flags().BoolVar(&noDesc, "no-descriptions", false, "disable completion descriptions")

	return cmd
}

// completeKinds completes the --type flag.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kinds := layout.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k) + "\t" + kindDescriptions[k]
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"svg", "png", "dot", "json"}, cobra.ShellCompDirectiveNoFileComp
}
