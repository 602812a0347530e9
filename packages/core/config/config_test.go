package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30000, cfg.Timeout)
	assert.Equal(t, "sqlite3", cfg.StoreDriver)
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
	assert.True(t, cfg.IsDefault())
}

func TestFindAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "timeout": 5000,
  "validateSSL": false,
  "headers": {"User-Agent": "hitflow-test"},
  "storeDriver": "sqlite",
  "rateLimit": 2.5
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hitflow.config.json"), []byte(content), 0644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Timeout)
	assert.False(t, cfg.GetValidateSSL())
	assert.True(t, cfg.GetFollowRedirects(), "unset keys keep their defaults")
	assert.Equal(t, "hitflow-test", cfg.Headers["User-Agent"])
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.False(t, cfg.IsDefault())
}

func TestFindAndLoadConfigWithoutFile(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.IsDefault())
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout": "soon"}`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"A": "1"}

	merged := base.Merge(&Config{
		Timeout:         1000,
		FollowRedirects: BoolPtr(false),
		Headers:         map[string]string{"B": "2"},
	})

	assert.Equal(t, 1000, merged.Timeout)
	assert.False(t, merged.GetFollowRedirects())
	assert.True(t, merged.GetValidateSSL())
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, merged.Headers)
	assert.Equal(t, map[string]string{"A": "1"}, base.Headers, "merge must not mutate the receiver")

	assert.Same(t, base, base.Merge(nil))
}

func TestFromEnv(t *testing.T) {
	vars := map[string]string{
		"HITFLOW_DATA_DIR":     "/tmp/hf",
		"HITFLOW_TIMEOUT":      "1500",
		"HITFLOW_VALIDATE_SSL": "false",
		"HITFLOW_RATE_LIMIT":   "4",
		"HITFLOW_OUTPUT":       "json",
	}
	lookup := func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}

	cfg, err := FromEnv(lookup)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/hf", cfg.DataDir)
	assert.Equal(t, 1500, cfg.Timeout)
	require.NotNil(t, cfg.ValidateSSL)
	assert.False(t, *cfg.ValidateSSL)
	assert.Nil(t, cfg.FollowRedirects)
	assert.Equal(t, 4.0, cfg.RateLimit)
	assert.Equal(t, "json", cfg.Output)
}

func TestFromEnvInvalidValues(t *testing.T) {
	lookup := func(k string) (string, bool) {
		switch k {
		case "HITFLOW_TIMEOUT":
			return "soon", true
		case "HITFLOW_NO_COLOR":
			return "sometimes", true
		}
		return "", false
	}

	_, err := FromEnv(lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HITFLOW_TIMEOUT")
	assert.Contains(t, err.Error(), "HITFLOW_NO_COLOR")
}

func TestResolveDirectories(t *testing.T) {
	t.Run("explicit data dir", func(t *testing.T) {
		cfg := &Config{DataDir: "/srv/hitflow"}
		dir, err := cfg.ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/srv/hitflow", dir)

		projects, err := cfg.ResolveProjectsDir()
		require.NoError(t, err)
		assert.Equal(t, "/srv/hitflow/projects", projects)

		db, err := cfg.StorePath()
		require.NoError(t, err)
		assert.Equal(t, "/srv/hitflow/hitflow.sqlite", db)
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/xdg")
		dir, err := (&Config{}).ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/xdg/hitflow", dir)
	})

	t.Run("explicit projects dir", func(t *testing.T) {
		cfg := &Config{DataDir: "/a", ProjectsDir: "/b"}
		projects, err := cfg.ResolveProjectsDir()
		require.NoError(t, err)
		assert.Equal(t, "/b", projects)
	})

	t.Run("home expansion", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		dir, err := (&Config{DataDir: "~/hf"}).ResolveDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "hf"), dir)
	})
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "nano")

	assert.Equal(t, "code -w", (&Config{Editor: "code -w"}).ResolveEditor())
	assert.Equal(t, "nano", (&Config{}).ResolveEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "vi", (&Config{}).ResolveEditor())
}
