package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/hitflow/packages/core/config"
	"github.com/abdul-hamid-achik/hitflow/packages/core/env"
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/core/runner"
	"github.com/abdul-hamid-achik/hitflow/packages/http"
	"github.com/abdul-hamid-achik/hitflow/packages/output"
	"github.com/abdul-hamid-achik/hitflow/packages/script"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <project> <request|scenario>",
	Short: "Run a request or a scenario of a project",
	Long: `Run a single request, or every request of a scenario in order.

A name that matches a request runs that request, even when a scenario has
the same name.

Variables are merged from, in increasing precedence: the --env-file,
global stored variables, variables stored for the project, and -e flags.

Examples:
  hitflow run shop login
  hitflow run shop checkout -e user=ada -e password=secret
  hitflow run shop checkout --env-file .env.staging --format raw
  hitflow run shop login --output json > login.json
  hitflow run shop checkout --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envFileFlag  string
	varFlags     []string
	formatFlag   string
	outputFlag   string
	watchFlag    bool
	timeoutFlag  string
	proxyFlag    string
	insecureFlag bool
	verboseFlag  bool
)

func init() {
	runCmd.Flags().StringVar(&envFileFlag, "env-file", os.Getenv("HITFLOW_ENV_FILE"), "Path to .env file for variable interpolation (env: HITFLOW_ENV_FILE)")
	runCmd.Flags().StringArrayVarP(&varFlags, "var", "e", nil, "Set a variable for this run (key=value, repeatable)")
	runCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Response body format: json, raw, html")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output mode: console, json")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-run when the project or env file changes")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "Request timeout (e.g., 30s, 1m)")
	runCmd.Flags().StringVar(&proxyFlag, "proxy", "", "Proxy URL for HTTP requests")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", false, "Disable SSL certificate validation")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Also print the rendered requests")
}

// parseAssignments turns key=value pairs into variables. The value may be
// empty and may itself contain '='.
func parseAssignments(pairs []string) (env.Vars, error) {
	vars := env.Vars{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &usageError{err: fmt.Errorf("invalid variable %q: expected key=value", pair)}
		}
		vars[key] = value
	}
	return vars, nil
}

// runOptions applies the run flags on top of the resolved config.
func runOptions(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	override := &config.Config{
		Proxy:  proxyFlag,
		Format: formatFlag,
		Output: outputFlag,
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, &usageError{err: fmt.Errorf("invalid timeout %q: %w", timeoutFlag, err)}
		}
		override.Timeout = int(d.Milliseconds())
	}
	if cmd.Flags().Changed("insecure") {
		override.ValidateSSL = config.BoolPtr(!insecureFlag)
	}
	return cfg.Merge(override), nil
}

func newClient(cfg *config.Config) *http.Client {
	opts := []http.ClientOption{
		http.WithTimeout(cfg.TimeoutDuration()),
		http.WithFollowRedirects(cfg.GetFollowRedirects()),
		http.WithMaxRedirects(cfg.MaxRedirects),
		http.WithValidateSSL(cfg.GetValidateSSL()),
		http.WithUserAgent("hitflow/" + version),
		http.WithDefaultHeaders(cfg.Headers),
	}
	if cfg.Proxy != "" {
		opts = append(opts, http.WithProxy(cfg.Proxy))
	}
	return http.NewClient(opts...)
}

func runCommand(cmd *cobra.Command, args []string) error {
	projectName, route := args[0], args[1]

	cfg, err := runOptions(cmd, currentConfig())
	if err != nil {
		return err
	}

	bodyFormat, err := output.ParseBodyFormat(cfg.Format)
	if err != nil {
		return &usageError{err: err}
	}
	if _, err := output.New(cfg.Output, output.Options{}); err != nil {
		return &usageError{err: err}
	}

	callerVars, err := parseAssignments(varFlags)
	if err != nil {
		return err
	}

	projectPath, err := locateProject(cfg, projectName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	executor := runner.NewExecutor(newClient(cfg), runner.WithExecutorLogger(logger))

	runOnce := func() error {
		formatter, err := output.New(cfg.Output, output.Options{
			Writer:     cmd.OutOrStdout(),
			Verbose:    verboseFlag,
			NoColor:    cfg.GetNoColor(),
			BodyFormat: bodyFormat,
		})
		if err != nil {
			return err
		}

		def, vars, err := prepareRun(ctx, st, projectPath, callerVars)
		if err != nil {
			formatter.FormatError(err)
			if flushErr := formatter.Flush(nil); flushErr != nil {
				return fmt.Errorf("error writing output: %w", flushErr)
			}
			return err
		}

		r := runner.New(executor, script.NewExprEvaluator(), st,
			runner.WithObserver(formatter),
			runner.WithRateLimit(cfg.RateLimit),
			runner.WithLogger(logger),
		)

		result, runErr := r.Run(ctx, def, route, vars)
		if runErr != nil {
			formatter.FormatError(runErr)
		}
		if err := formatter.Flush(result); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		return runErr
	}

	if !watchFlag {
		return runOnce()
	}

	_ = runOnce()
	return watch(ctx, cmd, []string{projectPath, envFileFlag}, func() { _ = runOnce() })
}

// prepareRun loads the project and builds the run variables from the env
// file, the store and the caller. Both are re-read on every run so that a
// watch loop picks up edits.
func prepareRun(ctx context.Context, st store.Store, projectPath string, callerVars env.Vars) (*project.Definition, env.Vars, error) {
	def, err := project.Load(projectPath)
	if err != nil {
		return nil, nil, err
	}
	for _, warning := range project.Validate(def) {
		logger.Warn("project definition", "project", def.API.Name, "warning", warning)
	}

	var fileVars env.Vars
	if envFileFlag != "" {
		fileVars, err = env.LoadDotEnv(envFileFlag)
		if err != nil {
			return nil, nil, &configError{err: err}
		}
	}

	global, projectVars, err := st.Load(ctx, def.API.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("loading stored variables: %w", err)
	}

	vars := env.Merge(fileVars, store.ToMap(global), store.ToMap(projectVars), callerVars)
	logger.Debug("variables merged", "file", len(fileVars), "global", len(global), "project", len(projectVars), "caller", len(callerVars))
	return def, vars, nil
}

// watch calls rerun after any write to one of paths, until ctx is done.
func watch(ctx context.Context, cmd *cobra.Command, paths []string, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directories and filter by name.
	targets := make(map[string]bool)
	watchedDirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	events := make(chan string, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(event.Name)
			if !targets[name] || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case events <- name:
				default:
				}
			})

		case name := <-events:
			fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n\n", name)
			rerun()
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("watcher overflow, some changes may be missed")
				continue
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
