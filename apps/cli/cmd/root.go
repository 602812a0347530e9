package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/hitflow/packages/core/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag   string
	dataDirFlag  string
	logLevelFlag string
	noColorFlag  bool

	// appConfig is resolved once per invocation by the root pre-run hook.
	appConfig *config.Config
	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "hitflow",
	Short: "Scripted HTTP request flows from the command line.",
	Long: `hitflow runs the HTTP requests and scenarios described in project files.

Requests use ${name} placeholders filled from an env file, stored
variables and -e flags. Scripts attached to a request run before or
after it and can store values, such as a token, for the following
requests and for later runs.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", os.Getenv("HITFLOW_CONFIG"), "Path to config file (env: HITFLOW_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding projects and the variable store (env: HITFLOW_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (env: HITFLOW_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output (env: HITFLOW_NO_COLOR)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration (file, then environment, then flags) and
// installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return &configError{err: err}
	}
	appConfig = cfg

	if cfg.GetNoColor() {
		color.NoColor = true
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return &configError{err: err}
	}
	logger = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	fromEnv, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(fromEnv)

	flags := &config.Config{
		DataDir:  dataDirFlag,
		LogLevel: logLevelFlag,
	}
	if cmd.Flags().Changed("no-color") {
		flags.NoColor = config.BoolPtr(noColorFlag)
	}
	return cfg.Merge(flags), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// currentConfig returns the resolved config, or defaults when a command runs
// without the root pre-run hook (as in tests calling a RunE directly).
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

var errCancelled = errors.New("cancelled")
