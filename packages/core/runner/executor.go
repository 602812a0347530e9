package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/abdul-hamid-achik/hitflow/packages/core/env"
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/http"
)

// RequestResult is one completed exchange.
type RequestResult struct {
	Name     string
	Request  *http.Request
	Response *http.Response
	Duration time.Duration
}

// Executor renders a request definition and sends it.
type Executor struct {
	client *http.Client
	logger *slog.Logger
}

type ExecutorOption func(*Executor)

func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor. A nil client uses http.NewClient defaults.
func NewExecutor(client *http.Client, opts ...ExecutorOption) *Executor {
	if client == nil {
		client = http.NewClient()
	}
	e := &Executor{
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute sends req against api with placeholders rendered from vars. On
// any completed exchange, whatever the status code, the status and body are
// written to vars under env.ResponseStatusKey and env.ResponseBodyKey.
func (e *Executor) Execute(ctx context.Context, req project.Request, api project.API, vars env.Vars) (*RequestResult, error) {
	e.warnUnresolved(req, api, vars)

	url := env.Render(api.BaseURL+req.Path, vars)

	headers, err := renderHeaders(req.Headers.String(), vars)
	if err != nil {
		return nil, err
	}

	body := ""
	if req.Body.IsSet() {
		body = env.Render(req.Body.String(), vars)
	}

	method, err := http.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	httpReq := http.NewRequest(method, url).SetBody(body)
	httpReq.Headers = headers

	e.logger.Debug("sending request", "name", req.Name, "method", method, "url", url, "headers", len(headers))

	start := time.Now()
	resp, err := e.client.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, url, err)
	}
	duration := time.Since(start)

	e.logger.Debug("received response", "name", req.Name, "status", resp.StatusCode, "bytes", len(resp.Body), "duration", duration)

	vars[env.ResponseStatusKey] = strconv.Itoa(resp.StatusCode)
	vars[env.ResponseBodyKey] = resp.BodyString()

	return &RequestResult{
		Name:     req.Name,
		Request:  httpReq,
		Response: resp,
		Duration: duration,
	}, nil
}

func (e *Executor) warnUnresolved(req project.Request, api project.API, vars env.Vars) {
	var missing []string
	for _, text := range []string{api.BaseURL + req.Path, req.Headers.String(), req.Body.String()} {
		missing = append(missing, env.Unresolved(text, vars)...)
	}
	if len(missing) > 0 {
		e.logger.Warn("unresolved placeholders are sent literally", "request", req.Name, "names", missing)
	}
}

// renderHeaders renders the header template and decodes it as a JSON object.
// String values are used as is; any other value is sent as its JSON text.
// Headers are returned in key order.
func renderHeaders(template string, vars env.Vars) ([]http.Header, error) {
	if template == "" {
		return nil, nil
	}

	rendered := env.Render(template, vars)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rendered), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderFormat, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: got null", ErrHeaderFormat)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]http.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, http.Header{Key: k, Value: headerValue(fields[k])})
	}
	return headers, nil
}

func headerValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
