//go:build !js_eval

package adsignal

type jsEvaluator struct{}

// NewJSEvaluator returns an evaluator failing every rule with
// ErrJSUnavailable. Build with -tags js_eval for the goja engine.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return &jsEvaluator{}
}

func (*jsEvaluator) Evaluate(RuleContext, string) (any, error) {
	return nil, wrapEvaluatorError("js", ErrJSUnavailable)
}

func (*jsEvaluator) Compile(string, ...CompileOption) (CompiledRule, error) {
	return nil, wrapEvaluatorError("js", ErrJSUnavailable)
}

func (*jsEvaluator) engine() string { return "js" }

func jsEvaluatorAvailable() bool {
	return false
}
