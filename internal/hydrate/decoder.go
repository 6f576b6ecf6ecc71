// Package hydrate turns loosely typed maps, such as decoded request bodies
// or YAML documents, into typed structs through a fixed pipeline:
// copy, rewrite (pre-hooks), decode, verify (post-hooks).
package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNilPayload is returned when Decode receives a nil map.
var ErrNilPayload = errors.New("payload is nil")

// Stage names a step of the decode pipeline.
type Stage string

const (
	StageCopy    Stage = "copy"
	StageRewrite Stage = "rewrite"
	StageDecode  Stage = "decode"
	StageVerify  Stage = "verify"
)

// Error reports the pipeline stage that failed.
type Error struct {
	Stage  Stage
	Source string
	Label  string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hydrate: %s stage failed for source %q: %v", e.Stage, e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Context identifies where a payload came from. It decorates errors and is
// passed to hooks unchanged.
type Context struct {
	Source string
	Label  string
}

func (c Context) fail(stage Stage, err error) error {
	return &Error{Stage: stage, Source: c.Source, Label: c.Label, Err: err}
}

// PreHook rewrites the payload before decoding. Returning a nil map keeps
// the current one.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook adjusts or validates the decoded value.
type PostHook[T any] func(Context, *T) error

// CustomDecoder replaces JSON decoding.
type CustomDecoder[T any] func(Context, map[string]any) (T, error)

// DecoderOption configures a Decoder.
type DecoderOption[T any] func(*Decoder[T])

// Decoder runs the pipeline for one target type. It is safe for concurrent
// use once built.
type Decoder[T any] struct {
	rewrite []PreHook
	verify  []PostHook[T]
	tune    []func(*json.Decoder)
	custom  CustomDecoder[T]
}

func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.rewrite = append(d.rewrite, hook)
		}
	}
}

func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.verify = append(d.verify, hook)
		}
	}
}

// WithUseNumber keeps numbers as json.Number so large IDs survive.
func WithUseNumber[T any]() DecoderOption[T] {
	return WithDecoderConfig[T]((*json.Decoder).UseNumber)
}

// WithDisallowUnknownFields rejects keys T does not declare.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return WithDecoderConfig[T]((*json.Decoder).DisallowUnknownFields)
}

// WithDecoderConfig tunes the json.Decoder used in the decode stage.
func WithDecoderConfig[T any](configure func(*json.Decoder)) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if configure != nil {
			d.tune = append(d.tune, configure)
		}
	}
}

// WithCustomDecoder replaces JSON decoding. Decoder tuning options are
// ignored when set.
func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.custom = decoder
	}
}

// NewDecoder builds a decoder applying opts in order.
func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode runs payload through the pipeline. payload itself is never
// modified; hooks work on a deep copy that keeps the original leaf types.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var result T
	if payload == nil {
		return result, ctx.fail(StageCopy, ErrNilPayload)
	}

	current := deepCopy(payload)

	for _, hook := range d.rewrite {
		next, err := hook(ctx, current)
		if err != nil {
			return result, ctx.fail(StageRewrite, err)
		}
		if next != nil {
			current = next
		}
	}

	result, err := d.decode(ctx, current)
	if err != nil {
		var zero T
		return zero, ctx.fail(StageDecode, err)
	}

	for _, hook := range d.verify {
		if err := hook(ctx, &result); err != nil {
			var zero T
			return zero, ctx.fail(StageVerify, err)
		}
	}
	return result, nil
}

func (d *Decoder[T]) decode(ctx Context, payload map[string]any) (T, error) {
	if d.custom != nil {
		return d.custom(ctx, payload)
	}
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	for _, configure := range d.tune {
		configure(dec)
	}
	err = dec.Decode(&out)
	return out, err
}

// deepCopy copies nested maps and slices so hooks may edit them freely.
// Leaf values are kept as they are; an int64 ID stays an int64 until the
// decode stage.
func deepCopy(payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return deepCopy(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
