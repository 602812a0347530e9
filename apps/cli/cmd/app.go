package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/hitflow/packages/core/config"
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
)

func projectsDir(cfg *config.Config) (string, error) {
	dir, err := cfg.ResolveProjectsDir()
	if err != nil {
		return "", &configError{err: err}
	}
	return dir, nil
}

func locateProject(cfg *config.Config, name string) (string, error) {
	dir, err := projectsDir(cfg)
	if err != nil {
		return "", err
	}
	return project.Locate(dir, name)
}

func loadProject(cfg *config.Config, name string) (*project.Definition, error) {
	path, err := locateProject(cfg, name)
	if err != nil {
		return nil, err
	}
	return project.Load(path)
}

func openStore(ctx context.Context, cfg *config.Config) (*store.SQLiteStore, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, &configError{err: err}
	}
	st, err := store.Open(ctx, cfg.StoreDriver, path, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("opening variable store: %w", err)
	}
	return st, nil
}

// scopeFor maps the --project flag onto a store scope. Runs load project
// variables under api.name, so a name that matches a project file resolves
// to that file's api.name. Other names are used as given.
func scopeFor(cfg *config.Config, projectName string) (store.Scope, error) {
	if projectName == "" {
		return store.Global(), nil
	}
	def, err := loadProject(cfg, projectName)
	if errors.Is(err, project.ErrNotFound) {
		return store.ProjectScope(projectName), nil
	}
	if err != nil {
		return store.Scope{}, err
	}
	if def.API.Name != projectName {
		logger.Debug("project scope resolved", "file", projectName, "api", def.API.Name)
	}
	return store.ProjectScope(def.API.Name), nil
}
