package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Validate a project file without executing it",
	Long: `Check a project file against the project schema and report
semantic problems: duplicate request names, scenarios shadowed by a
request, and scenarios referencing unknown requests.

Examples:
  hitflow validate shop`,
	Args: cobra.ExactArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	def, err := loadProject(currentConfig(), args[0])
	if err != nil {
		return err
	}

	warnings := project.Validate(def)
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d requests, %d scenarios, %d warnings)\n",
		def.Path, len(def.Requests), len(def.API.Scenarios), len(warnings))
	return nil
}
