package cmd

import (
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for hitflow.

To load completions:

Bash:
  $ source <(hitflow completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ hitflow completion bash > /etc/bash_completion.d/hitflow
  # macOS:
  $ hitflow completion bash > $(brew --prefix)/etc/bash_completion.d/hitflow

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ hitflow completion zsh > "${fpath[1]}/_hitflow"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ hitflow completion fish | source

  # To load completions for each session, execute once:
  $ hitflow completion fish > ~/.config/fish/completions/hitflow.fish

PowerShell:
  PS> hitflow completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> hitflow completion powershell > hitflow.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

// completeProjects completes the first argument with project names and,
// for run, the second with the request and scenario names of that project.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := currentConfig()
	if appConfig == nil {
		if loaded, err := loadConfig(cmd); err == nil {
			cfg = loaded
		}
	}

	switch {
	case len(args) == 0:
		dir, err := cfg.ResolveProjectsDir()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		names, err := project.List(dir)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	case len(args) == 1 && cmd == runCmd:
		def, err := loadProject(cfg, args[0])
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var routes []string
		for _, req := range def.Requests {
			routes = append(routes, req.Name)
		}
		routes = append(routes, def.ScenarioNames()...)
		return routes, cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func init() {
	for _, c := range []*cobra.Command{runCmd, editCmd, deleteCmd, listCmd, validateCmd} {
		c.ValidArgsFunction = completeProjects
	}
}
