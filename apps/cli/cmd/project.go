package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/spf13/cobra"
)

var projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

var (
	forceNew     bool
	forceDelete  bool
	editAfterNew bool
)

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a project file from the starter template",
	Long: `Create <projects dir>/<project>.yaml with one example request.

Examples:
  hitflow new shop
  hitflow new shop --edit`,
	Args: cobra.ExactArgs(1),
	RunE: newCommand,
}

var editCmd = &cobra.Command{
	Use:   "edit <project>",
	Short: "Open a project file in your editor",
	Long: `Open a project file with the configured editor, $VISUAL or $EDITOR.
The file is validated once the editor exits.`,
	Args: cobra.ExactArgs(1),
	RunE: editCommand,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project file",
	Long: `Delete a project file. Variables stored for the project are kept;
remove them with "hitflow unset --project".`,
	Args: cobra.ExactArgs(1),
	RunE: deleteCommand,
}

func init() {
	newCmd.Flags().BoolVar(&forceNew, "force", false, "Overwrite an existing project file")
	newCmd.Flags().BoolVar(&editAfterNew, "edit", false, "Open the new file in your editor")
	deleteCmd.Flags().BoolVarP(&forceDelete, "yes", "y", false, "Do not ask for confirmation")
}

func newCommand(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !projectNamePattern.MatchString(name) {
		return &usageError{err: fmt.Errorf("invalid project name %q", name)}
	}

	cfg := currentConfig()
	dir, err := projectsDir(cfg)
	if err != nil {
		return err
	}

	existing, err := project.Locate(dir, name)
	if err == nil && !forceNew {
		return fmt.Errorf("project already exists: %s (use --force to overwrite)", existing)
	}
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		return err
	}

	content, err := project.Template(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating projects directory: %w", err)
	}
	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)

	if editAfterNew {
		return openEditor(cmd, cfg.ResolveEditor(), path)
	}
	return nil
}

func editCommand(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	path, err := locateProject(cfg, args[0])
	if err != nil {
		return err
	}
	if err := openEditor(cmd, cfg.ResolveEditor(), path); err != nil {
		return err
	}

	if _, err := project.Load(path); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return nil
}

// openEditor runs the editor command with path appended. The command may
// carry arguments, e.g. "code -w".
func openEditor(cmd *cobra.Command, editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return &configError{err: errors.New("no editor configured")}
	}

	c := exec.CommandContext(cmd.Context(), parts[0], append(parts[1:], path)...)
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}
	return nil
}

func deleteCommand(cmd *cobra.Command, args []string) error {
	path, err := locateProject(currentConfig(), args[0])
	if err != nil {
		return err
	}

	if !forceDelete {
		fmt.Fprintf(cmd.OutOrStdout(), "Delete %s? [y/N] ", path)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			return errCancelled
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", path)
	return nil
}
