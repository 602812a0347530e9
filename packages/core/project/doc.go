// Package project loads hitflow project definitions.
//
// A project definition names an API (base URL and scenarios) and lists the
// requests that routes resolve to. Definitions can be written in YAML, TOML
// or JSON; all three are validated against the same embedded JSON schema
// before they are decoded.
package project
