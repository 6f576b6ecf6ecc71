package adsignal

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-adsignal/fields"
)

var (
	ErrNoEvaluator    = errors.New("adsignal: evaluator not configured")
	ErrEmptyRule      = errors.New("adsignal: expression must not be empty")
	ErrNonBooleanRule = errors.New("adsignal: rule did not evaluate to a boolean")
)

// RuleContext returns a rule context bound to the current resolved values.
// Every registry field is present in Values, nil when absent.
func (u *UserData) RuleContext() RuleContext {
	values := make(map[string]any, len(fields.Names()))
	sources := map[string]string{}
	for _, trace := range u.Traces() {
		key := trace.Field.String()
		if trace.Value == nil {
			values[key] = nil
			continue
		}
		values[key] = *trace.Value
		sources[key] = string(trace.Source)
	}
	return RuleContext{
		Values:  values,
		Sources: sources,
		Label:   u.cfg.label,
	}
}

// Evaluate executes expr against the resolved values and wraps the result.
func (u *UserData) Evaluate(expr string) (Response[any], error) {
	return u.EvaluateWith(RuleContext{}, expr)
}

// EvaluateWith executes expr using ctx, binding the resolved values when
// ctx.Values is nil.
func (u *UserData) EvaluateWith(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, ErrEmptyRule
	}
	evaluator, err := u.resolveEvaluator()
	if err != nil {
		return Response[any]{}, err
	}
	if ctx.Values == nil {
		bound := u.RuleContext()
		ctx.Values = bound.Values
		ctx.Sources = bound.Sources
	}
	if ctx.Label == "" {
		ctx.Label = u.cfg.label
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, ctx.label(), evalErr)
	u.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:     engine,
		Expr:       expr,
		Label:      ctx.label(),
		Present:    len(presentValues(ctx.Values)),
		ResultType: resultType(value, evalErr),
		Duration:   duration,
		Err:        evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

// Match evaluates a boolean rule, e.g. to decide whether a record carries
// enough identity to be sent.
func (u *UserData) Match(expr string) (bool, error) {
	response, err := u.Evaluate(expr)
	if err != nil {
		return false, err
	}
	matched, ok := response.Value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNonBooleanRule, response.Value)
	}
	return matched, nil
}

func (u *UserData) resolveEvaluator() (Evaluator, error) {
	evaluator := u.evaluator()
	if evaluator != nil {
		return evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := u.programCache(); cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := u.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	u.withEvaluator(defaultEvaluator)
	return defaultEvaluator, nil
}

// engineNamer is implemented by the built-in evaluators.
type engineNamer interface {
	engine() string
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(engineNamer); ok {
		return named.engine()
	}
	return "custom"
}
