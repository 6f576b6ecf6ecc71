package adsignal

import (
	"fmt"

	"github.com/goliatone/go-adsignal/fields"
)

// ruleEngine is what the built-in evaluators share. Cache keys are prefixed
// with the engine name so one ProgramCache can serve several engines.
type ruleEngine struct {
	name     string
	cache    ProgramCache
	registry *FunctionRegistry
}

func (r *ruleEngine) engine() string { return r.name }

func (r *ruleEngine) useRegistry(registry *FunctionRegistry) {
	if registry != nil {
		r.registry = registry.Clone()
	}
}

// compileCached returns the cached program for expression, building and
// storing it on a miss.
func compileCached[P any](r *ruleEngine, expression string, build func(string) (P, error)) (P, error) {
	var program P
	if expression == "" {
		return program, wrapEvaluatorError(r.name, ErrEmptyRule)
	}
	key := r.name + ":" + expression
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			if program, ok := cached.(P); ok {
				return program, nil
			}
		}
	}
	program, err := build(expression)
	if err != nil {
		return program, wrapEvaluationError(r.name, expression, "", err)
	}
	if r.cache != nil {
		r.cache.Set(key, program)
	}
	return program, nil
}

// rule wraps run so every invocation sees a defaulted context and failures
// name the engine, rule and label.
func (r *ruleEngine) rule(expression string, opts []CompileOption, run func(RuleContext) (any, error)) CompiledRule {
	cfg := applyCompileOptions(opts)
	return CompiledRuleFunc(func(ctx RuleContext) (any, error) {
		ctx = ctx.withDefaults()
		value, err := run(ctx)
		if err == nil && cfg.expectBool {
			if _, ok := value.(bool); !ok {
				err = fmt.Errorf("%w: got %T", ErrNonBooleanRule, value)
			}
		}
		if err != nil {
			return nil, wrapEvaluationError(r.name, expression, ctx.label(), err)
		}
		return value, nil
	})
}

// ruleEnv binds every registry field by name, nil when absent, next to the
// fields, sources, now, args and metadata variables.
func ruleEnv(ctx RuleContext) map[string]any {
	env := make(map[string]any, len(ctx.Values)+5)
	for _, name := range fields.Names() {
		env[name.String()] = nil
	}
	for key, value := range ctx.Values {
		env[key] = value
	}
	env["fields"] = presentValues(ctx.Values)
	env["sources"] = ctx.Sources
	env["now"] = ctx.timestamp()
	env["args"] = ctx.Args
	env["metadata"] = ctx.Metadata
	return env
}

// presentValues drops absent fields so has(fields.x) and `"x" in fields`
// report presence.
func presentValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if value != nil {
			out[key] = value
		}
	}
	return out
}
