package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [project]",
	Short: "List projects, or the requests and scenarios of one",
	Long: `Without arguments, list the projects in the projects directory.
With a project name, list its requests and scenarios.

Examples:
  hitflow list
  hitflow list shop`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		dir, err := projectsDir(cfg)
		if err != nil {
			return err
		}
		names, err := project.List(dir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(out, "No projects in %s\n", dir)
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	def, err := loadProject(cfg, args[0])
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(out, "%s %s\n", bold(def.API.Name), def.API.BaseURL)
	fmt.Fprintf(out, "\nRequests:\n")
	for _, req := range def.Requests {
		line := fmt.Sprintf("  %-24s %-7s %s", req.Name, strings.ToUpper(req.Method), req.Path)
		if n := len(req.Scripts); n > 0 {
			line += cyan(fmt.Sprintf(" (%d scripts)", n))
		}
		fmt.Fprintln(out, line)
	}

	if names := def.ScenarioNames(); len(names) > 0 {
		fmt.Fprintf(out, "\nScenarios:\n")
		for _, name := range names {
			seq, _ := def.Scenario(name)
			fmt.Fprintf(out, "  %-24s %s\n", name, strings.Join(seq, " -> "))
		}
	}
	return nil
}
