package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/abdul-hamid-achik/hitflow/packages/core/env"
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
)

// Phase selects which scripts of a request run.
type Phase int

const (
	PhaseBefore Phase = iota
	PhaseAfter
)

func (p Phase) String() string {
	if p == PhaseBefore {
		return "before"
	}
	return "after"
}

func (p Phase) matches(s project.Script) bool {
	return s.Before == (p == PhaseBefore)
}

// Error reports a script that failed to evaluate.
type Error struct {
	Phase       Phase
	Index       int
	Description string
	Err         error
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s script #%d (%s): %v", e.Phase, e.Index+1, e.Description, e.Err)
	}
	return fmt.Sprintf("%s script #%d: %v", e.Phase, e.Index+1, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Host runs request scripts and promotes their mapping results into the run
// variables and the store.
type Host struct {
	eval   Evaluator
	store  store.Store
	notify func(description string)
	logger *slog.Logger
}

type HostOption func(*Host)

// WithNotify sets a callback invoked with the description of each script
// before it runs. Scripts without a description are not announced.
func WithNotify(fn func(description string)) HostOption {
	return func(h *Host) {
		h.notify = fn
	}
}

func WithLogger(logger *slog.Logger) HostOption {
	return func(h *Host) {
		h.logger = logger
	}
}

// NewHost creates a Host. A nil store keeps captured values in memory only.
func NewHost(eval Evaluator, st store.Store, opts ...HostOption) *Host {
	h := &Host{
		eval:   eval,
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run evaluates, in declaration order, every script matching phase. Mapping
// results are written into vars and persisted under scope. The first failure
// stops the run.
func (h *Host) Run(ctx context.Context, scripts []project.Script, phase Phase, vars env.Vars, scope store.Scope) error {
	for i, s := range scripts {
		if !phase.matches(s) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Description != "" && h.notify != nil {
			h.notify(s.Description)
		}

		result, err := h.eval.Evaluate(ctx, s.Script, vars)
		if err != nil {
			return &Error{Phase: phase, Index: i, Description: s.Description, Err: err}
		}
		h.logger.Debug("script evaluated", "phase", phase, "index", i, "kind", result.Kind)

		if result.Kind != KindMapping {
			continue
		}
		if err := h.promote(ctx, result.Mapping, vars, scope); err != nil {
			return fmt.Errorf("%s script #%d: %w", phase, i+1, err)
		}
	}
	return nil
}

func (h *Host) promote(ctx context.Context, mapping map[string]any, vars env.Vars, scope store.Scope) error {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := Stringify(mapping[k])
		vars[k] = value
		if h.store == nil {
			continue
		}
		if err := h.store.Set(ctx, k, value, scope); err != nil {
			return err
		}
	}
	return nil
}
