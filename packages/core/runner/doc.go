// Package runner executes a route of a project definition.
//
// A route is either a single request name or a scenario name. The runner
// resolves it to an ordered list of requests and for each one:
//   - runs the before scripts
//   - renders and sends the request
//   - exposes the status and body as response_status and response_body
//   - runs the after scripts
//
// Scripts share one variable map for the whole run, so values captured by
// one step are visible to the next. The first error aborts the run.
package runner
