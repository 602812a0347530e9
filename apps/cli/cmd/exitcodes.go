package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/core/runner"
	"github.com/abdul-hamid-achik/hitflow/packages/http"
	"github.com/abdul-hamid-achik/hitflow/packages/script"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
)

// Exit codes for hitflow CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitFailure indicates an error without a more specific class
	ExitFailure = 1

	// ExitParseError indicates a missing or invalid project file, or a route
	// that does not resolve
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitRequestError indicates a request that could not be built
	// (bad headers or method)
	ExitRequestError = 5

	// ExitScriptError indicates a failing before or after script
	ExitScriptError = 6

	// ExitStoreError indicates the variable store could not be written
	ExitStoreError = 7

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// configError marks errors that come from loading configuration.
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// usageError marks invalid arguments that cobra itself does not catch.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode maps an error onto the exit code of the CLI.
func exitCode(err error) int {
	var (
		cfgErr    *configError
		useErr    *usageError
		scriptErr *script.Error
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &useErr):
		return ExitUsageError
	case errors.As(err, &cfgErr):
		return ExitConfigError
	case errors.As(err, &scriptErr):
		return ExitScriptError
	case errors.Is(err, store.ErrPersist):
		return ExitStoreError
	case errors.Is(err, runner.ErrTransport):
		return ExitNetworkError
	case errors.Is(err, runner.ErrHeaderFormat), errors.Is(err, http.ErrMethod):
		return ExitRequestError
	case errors.Is(err, runner.ErrUnknownRoute),
		errors.Is(err, runner.ErrMissingRequest),
		errors.Is(err, project.ErrNotFound),
		errors.Is(err, project.ErrInvalid):
		return ExitParseError
	default:
		return ExitFailure
	}
}
