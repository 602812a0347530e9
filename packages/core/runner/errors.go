package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRoute means the route names neither a request nor a scenario.
	ErrUnknownRoute = errors.New("unknown route")
	// ErrMissingRequest means a scenario references an undefined request.
	ErrMissingRequest = errors.New("missing request")
	// ErrHeaderFormat means the rendered headers are not a JSON object.
	ErrHeaderFormat = errors.New("headers are not a JSON object")
	// ErrTransport wraps failures to complete an HTTP exchange.
	ErrTransport = errors.New("transport failure")
)

// RequestError names the request a run failed on.
type RequestError struct {
	Request string
	// Index is the position of the request in the resolved sequence.
	Index int
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %q: %v", e.Request, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
