package adsignal

import (
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprEvaluatorOption configures the expr evaluator.
type ExprEvaluatorOption func(*exprEvaluator)

// ExprWithProgramCache shares compiled programs through cache.
func ExprWithProgramCache(cache ProgramCache) ExprEvaluatorOption {
	return func(e *exprEvaluator) { e.cache = cache }
}

// ExprWithFunctionRegistry exposes a copy of registry as expr functions.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprEvaluatorOption {
	return func(e *exprEvaluator) { e.useRegistry(registry) }
}

// exprEvaluator is the default engine. Undeclared identifiers evaluate to
// nil instead of failing compilation.
type exprEvaluator struct {
	ruleEngine
}

// NewExprEvaluator constructs an Evaluator backed by expr-lang/expr.
func NewExprEvaluator(opts ...ExprEvaluatorOption) Evaluator {
	e := &exprEvaluator{ruleEngine{name: "expr"}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *exprEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *exprEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	program, err := compileCached(&e.ruleEngine, expression, e.build)
	if err != nil {
		return nil, err
	}
	return e.rule(expression, opts, func(ctx RuleContext) (any, error) {
		return exprlang.Run(program, ruleEnv(ctx))
	}), nil
}

func (e *exprEvaluator) build(expression string) (*exprvm.Program, error) {
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	if e.registry != nil {
		for _, name := range e.registry.Names() {
			name := name
			options = append(options, exprlang.Function(name, func(arguments ...any) (any, error) {
				return e.registry.Call(name, arguments...)
			}))
		}
	}
	return exprlang.Compile(expression, options...)
}
