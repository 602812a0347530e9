package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/abdul-hamid-achik/hitflow/packages/builtin"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setProjectFlag string
	builtinsFlag   bool
)

var setCmd = &cobra.Command{
	Use:   "set <label> <value>",
	Short: "Store a variable",
	Long: `Store a variable globally, or for one project with --project.

Stored variables fill ${label} placeholders in every later run. Project
variables take precedence over global ones.

--project accepts a project file name or an api.name. A project file name is
resolved to the api.name declared inside it, which is the scope runs read.

Examples:
  hitflow set base_url http://localhost:8080
  hitflow set token abc123 --project shop`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		scope, err := scopeFor(cfg, setProjectFlag)
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Set(cmd.Context(), args[0], args[1], scope); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s (%s)\n", args[0], scope)
		return nil
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <label>",
	Short: "Remove a stored variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		scope, err := scopeFor(cfg, setProjectFlag)
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if _, ok, err := st.Get(cmd.Context(), args[0], scope); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("no variable %q (%s)", args[0], scope)
		}
		if err := st.Delete(cmd.Context(), args[0], scope); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", args[0], scope)
		return nil
	},
}

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "List stored variables",
	Long: `List stored variables. With --project, show the global variables and
those of the project as a run would see them. With --builtins, list the
functions available to scripts instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if builtinsFlag {
			for _, name := range builtin.NewRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		cfg := currentConfig()
		scope, err := scopeFor(cfg, setProjectFlag)
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var vars []store.Variable
		if !scope.IsGlobal() {
			global, projectVars, err := st.Load(cmd.Context(), scope.Project)
			if err != nil {
				return err
			}
			vars = append(global, projectVars...)
		} else {
			vars, err = st.List(cmd.Context())
			if err != nil {
				return err
			}
		}

		if len(vars) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No variables stored")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, v := range vars {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.Label, v.Value, faint(v.Scope.String()))
		}
		return w.Flush()
	},
}

func init() {
	for _, c := range []*cobra.Command{setCmd, unsetCmd, varsCmd} {
		c.Flags().StringVarP(&setProjectFlag, "project", "p", "", "Project file or api.name scope (default: global)")
	}
	varsCmd.Flags().BoolVar(&builtinsFlag, "builtins", false, "List the functions available to scripts")
}
