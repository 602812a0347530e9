package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMethod is returned for a method name that is not a standard HTTP method.
var ErrMethod = errors.New("invalid http method")

var methods = map[string]string{
	"GET":     http.MethodGet,
	"HEAD":    http.MethodHead,
	"POST":    http.MethodPost,
	"PUT":     http.MethodPut,
	"PATCH":   http.MethodPatch,
	"DELETE":  http.MethodDelete,
	"CONNECT": http.MethodConnect,
	"OPTIONS": http.MethodOptions,
	"TRACE":   http.MethodTrace,
}

// ParseMethod matches name case-insensitively against the standard methods
// and returns the canonical upper-case form.
func ParseMethod(name string) (string, error) {
	m, ok := methods[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMethod, name)
	}
	return m, nil
}
