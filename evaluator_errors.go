package adsignal

import (
	"errors"
	"fmt"
	"strings"
)

// maxRuleInError caps how much of a rule is echoed in error messages.
const maxRuleInError = 80

// EvaluationError reports a rule that failed to compile or run.
type EvaluationError struct {
	Engine string
	Expr   string
	Label  string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("adsignal: ")
	b.WriteString(e.Engine)
	b.WriteString(" rule")
	if e.Expr != "" {
		fmt.Fprintf(&b, " %q", clipRule(e.Expr))
	}
	if e.Label != "" {
		b.WriteString(" on ")
		b.WriteString(e.Label)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func clipRule(expr string) string {
	runes := []rune(expr)
	if len(runes) <= maxRuleInError {
		return expr
	}
	return string(runes[:maxRuleInError]) + "..."
}

// wrapEvaluatorError tags err with engine when it is not already an
// EvaluationError.
func wrapEvaluatorError(engine string, err error) error {
	return wrapEvaluationError(engine, "", "", err)
}

// wrapEvaluationError returns err as an EvaluationError, filling in any
// metadata an inner EvaluationError left blank.
func wrapEvaluationError(engine, expr, label string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		return &EvaluationError{Engine: engine, Expr: expr, Label: label, Err: err}
	}
	if evalErr.Engine == "" {
		evalErr.Engine = engine
	}
	if evalErr.Expr == "" {
		evalErr.Expr = expr
	}
	if evalErr.Label == "" {
		evalErr.Label = label
	}
	return evalErr
}
