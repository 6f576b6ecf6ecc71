package adsignal

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorCarriesRuleAndLabel(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "email != nil && missing", "purchase-1", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" || evalErr.Label != "purchase-1" {
		t.Fatalf("unexpected metadata %+v", evalErr)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
	want := `adsignal: expr rule "email != nil && missing" on purchase-1: boom`
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapEvaluationErrorFillsBlanksOnly(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{Engine: "expr", Err: base}

	err := wrapEvaluationError("cel", "rule", "lead-9", existing)
	if err != error(existing) {
		t.Fatalf("expected the existing error to be reused")
	}
	if existing.Engine != "expr" {
		t.Fatalf("engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" || existing.Label != "lead-9" {
		t.Fatalf("blank fields should be filled, got %+v", existing)
	}
}

func TestWrapEvaluatorErrorTagsEngine(t *testing.T) {
	err := wrapEvaluatorError("cel", ErrEmptyRule)
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Engine != "cel" || evalErr.Expr != "" {
		t.Fatalf("expected cel EvaluationError, got %v", err)
	}
	if err.Error() != "adsignal: cel rule: "+ErrEmptyRule.Error() {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrEmptyRule) {
		t.Fatalf("expected ErrEmptyRule to unwrap")
	}
	if wrapEvaluatorError("cel", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestEvaluationErrorClipsLongRules(t *testing.T) {
	rule := strings.Repeat("x", maxRuleInError+20)
	msg := wrapEvaluationError("js", rule, "", errors.New("bad")).Error()
	if strings.Contains(msg, rule) || !strings.Contains(msg, `..."`) {
		t.Fatalf("rule should be clipped in %q", msg)
	}
}
