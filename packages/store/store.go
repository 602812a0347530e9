// Package store persists hitflow variables across process invocations.
//
// Variables are scoped either globally or to a named project. For a given
// label and scope at most one value is live; writing replaces it.
package store

import (
	"context"
	"errors"
)

// ErrPersist wraps every failed durable write.
var ErrPersist = errors.New("persisting variable")

// Scope selects global variables (zero value) or the variables of one project.
type Scope struct {
	Project string
}

// Global is the scope shared by every project.
func Global() Scope { return Scope{} }

// ProjectScope returns the scope of the named project.
func ProjectScope(name string) Scope { return Scope{Project: name} }

func (s Scope) IsGlobal() bool { return s.Project == "" }

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return "project:" + s.Project
}

// Variable is a persisted (label, value, scope) triple.
type Variable struct {
	Label string
	Value string
	Scope Scope
}

// Store is the durable variable store used by scripts and the CLI.
type Store interface {
	Get(ctx context.Context, label string, scope Scope) (string, bool, error)
	Set(ctx context.Context, label, value string, scope Scope) error
	Delete(ctx context.Context, label string, scope Scope) error
	// Load returns the global variables and those of project.
	Load(ctx context.Context, project string) (global, projectVars []Variable, err error)
	List(ctx context.Context) ([]Variable, error)
	Close() error
}

// ToMap flattens variables into label/value pairs.
func ToMap(vars []Variable) map[string]string {
	m := make(map[string]string, len(vars))
	for _, v := range vars {
		m[v.Label] = v.Value
	}
	return m
}
