//go:build js_eval

package adsignal

import (
	"errors"
	"time"

	"github.com/dop251/goja"
)

type jsEvaluator struct {
	ruleEngine
	timeout time.Duration
}

// NewJSEvaluator constructs an Evaluator backed by goja. Every run gets a
// fresh runtime, so rules cannot leak state into one another.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	cfg := applyJSEvaluatorOptions(opts)
	return &jsEvaluator{
		ruleEngine: ruleEngine{name: "js", cache: cfg.cache, registry: cfg.registry},
		timeout:    cfg.timeout,
	}
}

func (e *jsEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *jsEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	program, err := compileCached(&e.ruleEngine, expression, compileJS)
	if err != nil {
		return nil, err
	}
	return e.rule(expression, opts, func(ctx RuleContext) (any, error) {
		return e.run(ctx, program)
	}), nil
}

// compileJS accepts a single expression. Wrapping it keeps statements and
// bare returns out of the grammar.
func compileJS(expression string) (*goja.Program, error) {
	return goja.Compile("rule.js", "(function(){ return ("+expression+"); })()", true)
}

func (e *jsEvaluator) run(ctx RuleContext, program *goja.Program) (any, error) {
	vm := goja.New()
	for name, value := range ruleEnv(ctx) {
		if err := vm.Set(name, value); err != nil {
			return nil, err
		}
	}
	if e.registry != nil {
		for _, name := range e.registry.Names() {
			name := name
			if err := vm.Set(name, func(arguments ...any) (any, error) {
				return e.registry.Call(name, arguments...)
			}); err != nil {
				return nil, err
			}
		}
	}
	if e.timeout > 0 {
		timer := time.AfterFunc(e.timeout, func() { vm.Interrupt(ErrRuleTimeout) })
		defer timer.Stop()
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, ErrRuleTimeout
		}
		return nil, err
	}
	return value.Export(), nil
}
