package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/core/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Project  string        `json:"project"`
	Route    string        `json:"route"`
	Sequence []string      `json:"sequence"`
	Requests []JSONRequest `json:"requests"`
	Notes    []JSONNote    `json:"notes,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration float64       `json:"duration"`
	Time     string        `json:"time"`
}

// JSONRequest represents one completed exchange
type JSONRequest struct {
	Name     string        `json:"name"`
	Method   string        `json:"method"`
	URL      string        `json:"url"`
	Headers  []JSONHeader  `json:"headers,omitempty"`
	Body     string        `json:"body,omitempty"`
	Response *JSONResponse `json:"response,omitempty"`
	Duration float64       `json:"duration"`
}

type JSONHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int                 `json:"statusCode"`
	Status     string              `json:"status"`
	Headers    map[string][]string `json:"headers,omitempty"`
	Body       json.RawMessage     `json:"body,omitempty"`
	RawBody    string              `json:"rawBody,omitempty"`
}

// JSONNote is a script description announced during the run
type JSONNote struct {
	Request     string `json:"request"`
	Description string `json:"description"`
}

// JSONFormatter collects a run and writes it as one JSON document
type JSONFormatter struct {
	writer   io.Writer
	requests []JSONRequest
	notes    []JSONNote
	err      error
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:   os.Stdout,
		requests: make([]JSONRequest, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) RequestStarted(index, total int, req *project.Request) {}

func (f *JSONFormatter) ScriptNote(req *project.Request, description string) {
	f.notes = append(f.notes, JSONNote{Request: req.Name, Description: description})
}

func (f *JSONFormatter) RequestFinished(result *runner.RequestResult) {
	entry := JSONRequest{
		Name:     result.Name,
		Duration: float64(result.Duration.Milliseconds()),
	}

	if result.Request != nil {
		entry.Method = result.Request.Method
		entry.URL = result.Request.URL
		entry.Body = result.Request.Body
		for _, h := range result.Request.Headers {
			entry.Headers = append(entry.Headers, JSONHeader{Key: h.Key, Value: h.Value})
		}
	}

	if resp := result.Response; resp != nil {
		out := &JSONResponse{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Headers:    resp.Headers,
		}
		// valid JSON bodies are embedded as documents, everything else as text
		if len(resp.Body) > 0 && json.Valid(resp.Body) {
			out.Body = json.RawMessage(resp.Body)
		} else {
			out.RawBody = resp.BodyString()
		}
		entry.Response = out
	}

	f.requests = append(f.requests, entry)
}

func (f *JSONFormatter) FormatError(err error) {
	f.err = err
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(result *runner.RunResult) error {
	output := JSONOutput{
		Requests: f.requests,
		Notes:    f.notes,
		Time:     time.Now().Format(time.RFC3339),
	}
	if result != nil {
		output.Project = result.Project
		output.Route = result.Route
		output.Sequence = result.Sequence
		output.Duration = float64(result.Duration.Milliseconds())
	}
	if f.err != nil {
		output.Error = f.err.Error()
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
