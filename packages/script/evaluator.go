package script

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/hitflow/packages/builtin"
	"github.com/expr-lang/expr"
)

// VarsBinding exposes the whole variable map, for names that are not valid
// identifiers (e.g. vars["2fa"]).
const VarsBinding = "vars"

// Kind tags the shape of a script result.
type Kind int

const (
	KindNone Kind = iota
	KindScalar
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	default:
		return "none"
	}
}

// Result is the value a script evaluated to.
type Result struct {
	Kind    Kind
	Scalar  any
	Mapping map[string]any
}

// Evaluator evaluates script source with the given bindings in scope.
type Evaluator interface {
	Evaluate(ctx context.Context, source string, bindings map[string]string) (Result, error)
}

// ExprEvaluator evaluates scripts written in the expr language.
type ExprEvaluator struct {
	funcs *builtin.Registry
}

type EvaluatorOption func(*ExprEvaluator)

// WithRegistry replaces the builtin function set.
func WithRegistry(r *builtin.Registry) EvaluatorOption {
	return func(e *ExprEvaluator) {
		e.funcs = r
	}
}

func NewExprEvaluator(opts ...EvaluatorOption) *ExprEvaluator {
	e := &ExprEvaluator{
		funcs: builtin.NewRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ExprEvaluator) Evaluate(ctx context.Context, source string, bindings map[string]string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(source) == "" {
		return Result{Kind: KindNone}, nil
	}

	scope := e.funcs.Bindings()
	all := make(map[string]any, len(bindings))
	for k, v := range bindings {
		all[k] = v
	}
	scope[VarsBinding] = all
	// variables shadow builtins of the same name
	for k, v := range bindings {
		scope[k] = v
	}

	program, err := expr.Compile(source, expr.Env(scope))
	if err != nil {
		return Result{}, fmt.Errorf("compile: %w", err)
	}
	out, err := expr.Run(program, scope)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}
	return classify(out), nil
}

func classify(v any) Result {
	switch val := v.(type) {
	case nil:
		return Result{Kind: KindNone}
	case map[string]any:
		return Result{Kind: KindMapping, Mapping: val}
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return Result{Kind: KindMapping, Mapping: m}
	default:
		return Result{Kind: KindScalar, Scalar: val}
	}
}

// Stringify converts a script value to the text stored in variables.
// Maps and slices are encoded as JSON; nil becomes the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case map[string]any, []any, map[string]string, []string:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
