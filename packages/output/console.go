package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/core/runner"
	"github.com/abdul-hamid-achik/hitflow/packages/http"
	"github.com/fatih/color"
)

// ConsoleFormatter prints a transcript of a run as it happens.
type ConsoleFormatter struct {
	writer     io.Writer
	verbose    bool
	noColor    bool
	bodyFormat BodyFormat
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer:     os.Stdout,
		bodyFormat: BodyJSON,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithVerbose also prints the rendered request headers and body.
func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func WithBodyFormat(bf BodyFormat) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.bodyFormat = bf
	}
}

func (f *ConsoleFormatter) RequestStarted(index, total int, req *project.Request) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if index > 0 {
		fmt.Fprintln(f.writer)
	}
	line := fmt.Sprintf("==> %s", bold(req.Name))
	if total > 1 {
		line += cyan(fmt.Sprintf(" [%d/%d]", index+1, total))
	}
	fmt.Fprintln(f.writer, line)
}

func (f *ConsoleFormatter) ScriptNote(req *project.Request, description string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", yellow(">>"), description)
}

func (f *ConsoleFormatter) RequestFinished(result *runner.RequestResult) {
	cyan := color.New(color.FgCyan).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	if f.verbose && result.Request != nil {
		fmt.Fprintf(f.writer, "%s %s\n", result.Request.Method, result.Request.URL)
		for _, h := range result.Request.Headers {
			fmt.Fprintf(f.writer, "%s %s: %s\n", faint(">"), h.Key, h.Value)
		}
		if result.Request.Body != "" {
			fmt.Fprintf(f.writer, "%s\n", faint(result.Request.Body))
		}
	}

	resp := result.Response
	if resp == nil {
		return
	}

	fmt.Fprintf(f.writer, "Status: %s %s\n", f.status(resp), cyan(fmt.Sprintf("(%dms)", result.Duration.Milliseconds())))
	for _, name := range resp.HeaderNames() {
		fmt.Fprintf(f.writer, "%s: %s\n", name, strings.Join(resp.Headers.Values(name), ", "))
	}
	if len(resp.Body) > 0 {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, FormatBody(resp.Body, f.bodyFormat, !color.NoColor))
	}
}

func (f *ConsoleFormatter) status(resp *http.Response) string {
	text := resp.Status
	if text == "" {
		text = strconv.Itoa(resp.StatusCode)
	}
	switch {
	case resp.IsServerError():
		return color.New(color.FgRed, color.Bold).Sprint(text)
	case resp.IsClientError():
		return color.New(color.FgRed).Sprint(text)
	case resp.IsRedirect():
		return color.New(color.FgYellow).Sprint(text)
	case resp.IsSuccess():
		return color.New(color.FgGreen).Sprint(text)
	default:
		return text
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

// Flush prints the run summary. The transcript itself was written as the
// run progressed.
func (f *ConsoleFormatter) Flush(result *runner.RunResult) error {
	if result == nil || len(result.Sequence) < 2 {
		return nil
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "\n%s of %d requests in %dms\n",
		green(fmt.Sprintf("%d", len(result.Results))), len(result.Sequence), result.Duration.Milliseconds())
	return nil
}
