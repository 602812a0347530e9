package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, driver string) *SQLiteStore {
	t.Helper()
	s, err := Open(context.Background(), driver, filepath.Join(t.TempDir(), "hitflow.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetAndLoadGlobalAndProjectVariables(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPure} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			s := newTestStore(t, driver)

			require.NoError(t, s.Set(ctx, "token", "global-token", Global()))
			require.NoError(t, s.Set(ctx, "token", "project-token", ProjectScope("my_project")))
			require.NoError(t, s.Set(ctx, "url", "https://example.com", ProjectScope("my_project")))
			require.NoError(t, s.Set(ctx, "other", "x", ProjectScope("another")))

			global, project, err := s.Load(ctx, "my_project")
			require.NoError(t, err)

			require.Len(t, global, 1)
			assert.Equal(t, "token", global[0].Label)
			assert.Equal(t, "global-token", global[0].Value)
			assert.True(t, global[0].Scope.IsGlobal())

			require.Len(t, project, 2)
			m := ToMap(project)
			assert.Equal(t, "project-token", m["token"])
			assert.Equal(t, "https://example.com", m["url"])
			for _, v := range project {
				assert.Equal(t, "my_project", v.Scope.Project)
			}
		})
	}
}

func TestSetOverwritesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, DriverCGO)

	require.NoError(t, s.Set(ctx, "token", "first", ProjectScope("project")))
	require.NoError(t, s.Set(ctx, "token", "second", ProjectScope("project")))
	require.NoError(t, s.Set(ctx, "token", "g1", Global()))
	require.NoError(t, s.Set(ctx, "token", "g2", Global()))

	global, project, err := s.Load(ctx, "project")
	require.NoError(t, err)

	require.Len(t, project, 1)
	assert.Equal(t, "second", project[0].Value)
	require.Len(t, global, 1)
	assert.Equal(t, "g2", global[0].Value)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, DriverPure)

	_, ok, err := s.Get(ctx, "missing", Global())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v", ProjectScope("p")))

	v, ok, err := s.Get(ctx, "k", ProjectScope("p"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok, err = s.Get(ctx, "k", Global())
	require.NoError(t, err)
	assert.False(t, ok, "project variable must not leak into global scope")

	require.NoError(t, s.Delete(ctx, "k", ProjectScope("p")))
	_, ok, err = s.Get(ctx, "k", ProjectScope("p"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "hitflow.sqlite")

	s, err := Open(ctx, DriverCGO, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "token", "abc", ProjectScope("api")))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, DriverCGO, path)
	require.NoError(t, err)
	defer reopened.Close()

	_, project, err := reopened.Load(ctx, "api")
	require.NoError(t, err)
	require.Len(t, project, 1)
	assert.Equal(t, "abc", project[0].Value)
}

func TestSetAfterCloseWrapsErrPersist(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, DriverCGO, filepath.Join(t.TempDir(), "db.sqlite"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Set(ctx, "k", "v", Global())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersist))
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		hasError bool
	}{
		{"", DriverCGO, false},
		{"sqlite3", DriverCGO, false},
		{"mattn", DriverCGO, false},
		{"sqlite", DriverPure, false},
		{"MODERNC", DriverPure, false},
		{"postgres", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDriver(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", Global().String())
	assert.Equal(t, "project:api", ProjectScope("api").String())
}
