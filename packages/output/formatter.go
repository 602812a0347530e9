package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/hitflow/packages/core/runner"
)

// Formatter observes a run and reports it once it has ended.
type Formatter interface {
	runner.Observer
	FormatError(err error)
	Flush(result *runner.RunResult) error
}

type Options struct {
	Writer     io.Writer
	Verbose    bool
	NoColor    bool
	BodyFormat BodyFormat
}

// New returns the formatter registered under name ("console" or "json").
func New(name string, opts Options) (Formatter, error) {
	switch name {
	case "", "console":
		consoleOpts := []ConsoleOption{
			WithVerbose(opts.Verbose),
			WithNoColor(opts.NoColor),
		}
		if opts.Writer != nil {
			consoleOpts = append(consoleOpts, WithWriter(opts.Writer))
		}
		if opts.BodyFormat != "" {
			consoleOpts = append(consoleOpts, WithBodyFormat(opts.BodyFormat))
		}
		return NewConsoleFormatter(consoleOpts...), nil
	case "json":
		var jsonOpts []JSONOption
		if opts.Writer != nil {
			jsonOpts = append(jsonOpts, JSONWithWriter(opts.Writer))
		}
		return NewJSONFormatter(jsonOpts...), nil
	default:
		return nil, fmt.Errorf("unknown output %q (expected console or json)", name)
	}
}
