// Package output presents runs to the user.
//
// Supported output modes:
//   - Console: coloured request-by-request transcript with response status,
//     headers and body
//   - JSON: one machine-readable document per run, written on Flush
//
// Both formatters observe the runner as it goes (runner.Observer) and are
// flushed once the run has ended, successfully or not.
package output
