package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// completionTimeout bounds the API call made while completing IDs.
const completionTimeout = 2 * time.Second

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for worldwise.

To load completions:

Bash:
  $ source <(worldwise completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ worldwise completion bash > /etc/bash_completion.d/worldwise
  # macOS:
  $ worldwise completion bash > $(brew --prefix)/etc/bash_completion.d/worldwise

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ worldwise completion zsh > "${fpath[1]}/_worldwise"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ worldwise completion fish | source
  # To load completions for each session, execute once:
  $ worldwise completion fish > ~/.config/fish/completions/worldwise.fish

City IDs are completed from the API at base_url.
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Long:  "Generate the autocompletion script for bash.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Root().GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Long:  "Generate the autocompletion script for zsh.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Root().GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Long:  "Generate the autocompletion script for fish.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeCityIDs completes city IDs, described by emoji and name.
// Only the first positional argument is completed.
func completeCityIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx, cancel := context.WithTimeout(commandContext(cmd), completionTimeout)
	defer cancel()

	cities, err := newRemote().ListCities(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, c := range cities {
		id := c.ID.String()
		if strings.HasPrefix(id, toComplete) {
			completions = append(completions, id+"\t"+strings.TrimSpace(c.Emoji+" "+c.CityName))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
