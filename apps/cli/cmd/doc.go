// Package cmd implements the hitflow CLI commands using Cobra.
//
// Available commands:
//   - run: Execute a request or scenario of a project
//   - set, unset, vars: Manage stored variables
//   - new, edit, delete: Manage project files
//   - list: Show projects, or the requests and scenarios of one
//   - validate: Check a project file without executing it
//   - completion, version
//
// Configuration comes from a JSON config file, HITFLOW_* environment
// variables and flags, in increasing order of precedence.
package cmd
