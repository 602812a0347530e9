package config

const (
	DefaultTimeoutMs    = 30000
	DefaultMaxRedirects = 10
	DefaultStoreDriver  = "sqlite3"
	DefaultFormat       = "json"
	DefaultOutput       = "console"
	DefaultLogLevel     = "warn"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		StoreDriver:     DefaultStoreDriver,
		Timeout:         DefaultTimeoutMs,
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    DefaultMaxRedirects,
		ValidateSSL:     BoolPtr(true),
		Format:          DefaultFormat,
		Output:          DefaultOutput,
		NoColor:         BoolPtr(false),
		LogLevel:        DefaultLogLevel,
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.DataDir == defaults.DataDir &&
		c.ProjectsDir == defaults.ProjectsDir &&
		c.StoreDriver == defaults.StoreDriver &&
		c.Timeout == defaults.Timeout &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		len(c.Headers) == 0 &&
		c.Format == defaults.Format &&
		c.Output == defaults.Output &&
		c.RateLimit == defaults.RateLimit &&
		c.Editor == defaults.Editor &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.LogLevel == defaults.LogLevel
}
