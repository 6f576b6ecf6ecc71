//go:build !js_eval

package adsignal

import (
	"errors"
	"testing"
)

func TestJSEvaluatorUnavailableWithoutTag(t *testing.T) {
	user := New(Params{Email: String("a@x.com")}, WithEvaluator(NewJSEvaluator(JSWithTimeout(0))))

	_, err := user.Match(`email != null`)
	if !errors.Is(err, ErrJSUnavailable) {
		t.Fatalf("expected ErrJSUnavailable, got %v", err)
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Engine != "js" {
		t.Fatalf("expected js EvaluationError, got %v", err)
	}
}
