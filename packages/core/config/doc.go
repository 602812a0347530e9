// Package config handles configuration loading and management for hitflow.
//
// It provides functionality for:
//   - Loading configuration from .hitflow.config.json, hitflow.config.json
//     or .hitflowrc, falling back to the user config directory
//   - Default configuration values
//   - HITFLOW_* environment variable overrides
//   - Resolving the data directory that holds projects and the store
package config
