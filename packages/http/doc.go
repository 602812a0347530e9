// Package http sends the rendered requests of a run.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts
//   - Redirect handling
//   - Proxy and TLS verification settings
//   - Default headers applied to every request
//   - Full response capture regardless of status code
package http
