package adsignal

import (
	"fmt"
	"reflect"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/goliatone/go-adsignal/fields"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache shares compiled programs through cache.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) { e.cache = cache }
}

// CELWithFunctionRegistry exposes a copy of registry through
// call(name, [args]).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) { e.useRegistry(registry) }
}

// celEvaluator declares every registry field as a dyn variable, so absent
// fields evaluate to null. Use has(fields.<name>) to test presence.
// Identifiers outside the registry fail type checking.
type celEvaluator struct {
	ruleEngine
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{ruleEngine{name: "cel"}}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *celEvaluator) Compile(expression string, opts ...CompileOption) (CompiledRule, error) {
	program, err := compileCached(&e.ruleEngine, expression, e.build)
	if err != nil {
		return nil, err
	}
	return e.rule(expression, opts, func(ctx RuleContext) (any, error) {
		out, _, err := program.Eval(ruleEnv(ctx))
		if err != nil {
			return nil, err
		}
		return out.Value(), nil
	}), nil
}

func (e *celEvaluator) build(expression string) (celgo.Program, error) {
	env, err := celgo.NewEnv(e.declarations()...)
	if err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	checked, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return env.Program(checked)
}

func (e *celEvaluator) declarations() []celgo.EnvOption {
	decls := []celgo.EnvOption{
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("fields", celgo.MapType(celgo.StringType, celgo.DynType)),
		celgo.Variable("sources", celgo.MapType(celgo.StringType, celgo.StringType)),
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	for _, name := range fields.Names() {
		decls = append(decls, celgo.Variable(name.String(), celgo.DynType))
	}
	if e.registry != nil {
		decls = append(decls, celgo.Function("call",
			celgo.Overload("call_string_list",
				[]*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)},
				celgo.DynType,
				celgo.BinaryBinding(e.call),
			),
		))
	}
	return decls
}

func (e *celEvaluator) call(name, arguments ref.Val) ref.Val {
	fn, ok := name.Value().(string)
	if !ok {
		return types.NewErr("call: function name must be a string")
	}
	native, err := arguments.ConvertToNative(reflect.TypeOf([]any{}))
	if err != nil {
		return types.NewErr("call %s: arguments: %v", fn, err)
	}
	result, err := e.registry.Call(fn, native.([]any)...)
	if err != nil {
		return types.NewErr("call %s: %v", fn, err)
	}
	if result == nil {
		return types.NullValue
	}
	return types.DefaultTypeAdapter.NativeToValue(result)
}
