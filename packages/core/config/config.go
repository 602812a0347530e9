package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config represents the hitflow configuration
type Config struct {
	DataDir         string            `json:"dataDir,omitempty"`
	ProjectsDir     string            `json:"projectsDir,omitempty"`
	StoreDriver     string            `json:"storeDriver,omitempty"` // sqlite3 or sqlite
	Timeout         int               `json:"timeout,omitempty"`     // milliseconds
	FollowRedirects *bool             `json:"followRedirects,omitempty"`
	MaxRedirects    int               `json:"maxRedirects,omitempty"`
	ValidateSSL     *bool             `json:"validateSSL,omitempty"`
	Proxy           string            `json:"proxy,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"` // Default headers for all requests
	Format          string            `json:"format,omitempty"`  // json, raw or html
	Output          string            `json:"output,omitempty"`  // console or json
	RateLimit       float64           `json:"rateLimit,omitempty"`
	Editor          string            `json:"editor,omitempty"`
	NoColor         *bool             `json:"noColor,omitempty"`
	LogLevel        string            `json:"logLevel,omitempty"`
}

// BoolPtr returns a pointer to b, for the tri-state flags.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".hitflow.config.json",
	"hitflow.config.json",
	".hitflowrc",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the working directory and then the user config directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	cfg, found, err := findConfig(".")
	if err != nil || found {
		return cfg, err
	}

	if userPath, err := UserConfigPath(); err == nil {
		if _, statErr := os.Stat(userPath); statErr == nil {
			return loadConfigFromFile(userPath)
		}
	}
	return DefaultConfig(), nil
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	cfg, _, err := findConfig(dir)
	return cfg, err
}

func findConfig(dir string) (*Config, bool, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			cfg, err := loadConfigFromFile(configPath)
			return cfg, true, err
		}
	}
	return DefaultConfig(), false, nil
}

// UserConfigPath is the per-user config file, e.g. ~/.config/hitflow/config.json.
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hitflow", "config.json"), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DataDir != "" {
		result.DataDir = other.DataDir
	}
	if other.ProjectsDir != "" {
		result.ProjectsDir = other.ProjectsDir
	}
	if other.StoreDriver != "" {
		result.StoreDriver = other.StoreDriver
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}
	if other.Format != "" {
		result.Format = other.Format
	}
	if other.Output != "" {
		result.Output = other.Output
	}
	if other.RateLimit > 0 {
		result.RateLimit = other.RateLimit
	}
	if other.Editor != "" {
		result.Editor = other.Editor
	}
	if other.LogLevel != "" {
		result.LogLevel = other.LogLevel
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	return &result
}

// FromEnv builds an override config from HITFLOW_* variables. lookup is
// usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	c := &Config{}
	var errs []error

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst **bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = BoolPtr(b)
	}

	str("HITFLOW_DATA_DIR", &c.DataDir)
	str("HITFLOW_PROJECTS_DIR", &c.ProjectsDir)
	str("HITFLOW_STORE_DRIVER", &c.StoreDriver)
	str("HITFLOW_PROXY", &c.Proxy)
	str("HITFLOW_FORMAT", &c.Format)
	str("HITFLOW_OUTPUT", &c.Output)
	str("HITFLOW_EDITOR", &c.Editor)
	str("HITFLOW_LOG_LEVEL", &c.LogLevel)
	boolean("HITFLOW_FOLLOW_REDIRECTS", &c.FollowRedirects)
	boolean("HITFLOW_VALIDATE_SSL", &c.ValidateSSL)
	boolean("HITFLOW_NO_COLOR", &c.NoColor)

	if v, ok := lookup("HITFLOW_TIMEOUT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("HITFLOW_TIMEOUT: %w", err))
		} else {
			c.Timeout = n
		}
	}
	if v, ok := lookup("HITFLOW_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("HITFLOW_RATE_LIMIT: %w", err))
		} else {
			c.RateLimit = f
		}
	}

	return c, errors.Join(errs...)
}

// ResolveDataDir returns the directory holding projects and the store:
// the configured dataDir, else $XDG_DATA_HOME/hitflow, else
// ~/.local/share/hitflow.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return expandHome(c.DataDir)
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "hitflow"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating data directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "hitflow"), nil
}

// ResolveProjectsDir returns projectsDir, or <data dir>/projects.
func (c *Config) ResolveProjectsDir() (string, error) {
	if c.ProjectsDir != "" {
		return expandHome(c.ProjectsDir)
	}
	data, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "projects"), nil
}

// StorePath is the SQLite database file inside the data directory.
func (c *Config) StorePath() (string, error) {
	data, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "hitflow.sqlite"), nil
}

// ResolveEditor picks the editor command: the configured one, $VISUAL,
// $EDITOR, then vi.
func (c *Config) ResolveEditor() string {
	for _, candidate := range []string{c.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
