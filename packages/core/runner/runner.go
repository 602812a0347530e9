package runner

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/abdul-hamid-achik/hitflow/packages/core/env"
	"github.com/abdul-hamid-achik/hitflow/packages/core/project"
	"github.com/abdul-hamid-achik/hitflow/packages/script"
	"github.com/abdul-hamid-achik/hitflow/packages/store"
	"golang.org/x/time/rate"
)

// Observer is notified as a run progresses. Calls happen on the goroutine
// that called Run, in execution order.
type Observer interface {
	RequestStarted(index, total int, req *project.Request)
	ScriptNote(req *project.Request, description string)
	RequestFinished(result *RequestResult)
}

type nopObserver struct{}

func (nopObserver) RequestStarted(int, int, *project.Request) {}
func (nopObserver) ScriptNote(*project.Request, string) {}
func (nopObserver) RequestFinished(*RequestResult) {}

type Runner struct {
	executor  *Executor
	evaluator script.Evaluator
	store     store.Store
	observer  Observer
	limiter   *rate.Limiter
	logger    *slog.Logger
}

type Option func(*Runner)

func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithRateLimit caps the number of requests sent per second within a run.
// Zero or less means unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(r *Runner) {
		if perSecond > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			r.limiter = nil
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner. A nil store keeps script results for the current
// run only.
func New(executor *Executor, evaluator script.Evaluator, st store.Store, opts ...Option) *Runner {
	if executor == nil {
		executor = NewExecutor(nil)
	}
	if evaluator == nil {
		evaluator = script.NewExprEvaluator()
	}
	r := &Runner{
		executor:  executor,
		evaluator: evaluator,
		store:     st,
		observer:  nopObserver{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunResult holds what a run achieved, including partial progress when it
// failed.
type RunResult struct {
	Project  string
	Route    string
	Sequence []string
	Results  []*RequestResult
	// Vars is the variable map at the end of the run.
	Vars     env.Vars
	Duration time.Duration
}

// Run resolves route within def and executes its requests in order. vars is
// mutated in place and also returned in the result. Every referenced request
// is checked before anything is sent.
func (r *Runner) Run(ctx context.Context, def *project.Definition, route string, vars env.Vars) (*RunResult, error) {
	start := time.Now()
	if vars == nil {
		vars = env.Vars{}
	}
	result := &RunResult{
		Project: def.API.Name,
		Route:   route,
		Vars:    vars,
	}
	defer func() {
		result.Duration = time.Since(start)
	}()

	names, err := Resolve(def, route)
	if err != nil {
		return result, err
	}
	result.Sequence = names

	requests, err := lookup(def, route, names)
	if err != nil {
		return result, err
	}

	r.logger.Debug("route resolved", "project", def.API.Name, "route", route, "requests", names)

	scope := store.ProjectScope(def.API.Name)
	for i, req := range requests {
		res, err := r.step(ctx, def, req, i, len(requests), vars, scope)
		if res != nil {
			result.Results = append(result.Results, res)
		}
		if err != nil {
			return result, &RequestError{Request: req.Name, Index: i, Err: err}
		}
	}
	return result, nil
}

func (r *Runner) step(ctx context.Context, def *project.Definition, req *project.Request, index, total int, vars env.Vars, scope store.Scope) (*RequestResult, error) {
	r.observer.RequestStarted(index, total, req)

	host := script.NewHost(r.evaluator, r.store,
		script.WithNotify(func(description string) {
			r.observer.ScriptNote(req, description)
		}),
		script.WithLogger(r.logger),
	)

	if err := host.Run(ctx, req.Scripts, script.PhaseBefore, vars, scope); err != nil {
		return nil, err
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	res, err := r.executor.Execute(ctx, *req, def.API, vars)
	if err != nil {
		return nil, err
	}
	r.observer.RequestFinished(res)

	if err := host.Run(ctx, req.Scripts, script.PhaseAfter, vars, scope); err != nil {
		return res, err
	}
	return res, nil
}
