package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrFieldType reports a present field whose value cannot be converted to
// the requested type.
var ErrFieldType = errors.New("resource: field type mismatch")

// Object is one decoded entity of a resource kind. Only declared fields are
// kept; anything else the platform returns is dropped.
type Object struct {
	descriptor Descriptor
	data       map[string]any
}

// NewObject wraps data for kind d. Undeclared keys are dropped.
func NewObject(d Descriptor, data map[string]any) *Object {
	obj := &Object{descriptor: d, data: make(map[string]any, len(data))}
	for k, v := range data {
		if d.HasField(k) {
			obj.data[k] = v
		}
	}
	return obj
}

// Decode parses a JSON entity of kind d.
func Decode(d Descriptor, payload []byte) (*Object, error) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("resource: decode %s: %w", d.Kind, err)
	}
	return NewObject(d, data), nil
}

// Descriptor returns the kind the object was decoded as.
func (o *Object) Descriptor() Descriptor {
	return o.descriptor
}

// ID returns the entity id when the kind declares one and it is present.
func (o *Object) ID() (string, bool) {
	id, err := Field[string](o, "id")
	if err != nil {
		return "", false
	}
	return id, true
}

// Get returns the raw value of field. Undeclared fields are an error; declared
// but absent fields report false.
func (o *Object) Get(field string) (any, bool, error) {
	if !o.descriptor.HasField(field) {
		return nil, false, fmt.Errorf("%w: %s.%s", ErrUnknownField, o.descriptor.Kind, field)
	}
	v, ok := o.data[field]
	return v, ok, nil
}

// Present returns the fields holding a value, in declaration order.
func (o *Object) Present() []string {
	var out []string
	for _, f := range o.descriptor.Fields {
		if _, ok := o.data[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Project returns the values of the projected fields that are present.
func (o *Object) Project(p Projection) map[string]any {
	out := make(map[string]any, len(p.fields))
	for _, f := range p.fields {
		if v, ok := o.data[f]; ok {
			out[f] = v
		}
	}
	return out
}

// MarshalJSON renders the declared fields held by the object.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.data)
}

// Field reads field from o as T. Numbers decoded from JSON are float64;
// requesting an integer or string type converts them.
func Field[T any](o *Object, field string) (T, error) {
	var zero T
	raw, ok, err := o.Get(field)
	if err != nil {
		return zero, err
	}
	if !ok || raw == nil {
		return zero, fmt.Errorf("%w: %s.%s is absent", ErrFieldType, o.descriptor.Kind, field)
	}
	if v, ok := raw.(T); ok {
		return v, nil
	}
	if v, ok := convert[T](raw); ok {
		return v, nil
	}
	return zero, fmt.Errorf("%w: %s.%s is %T", ErrFieldType, o.descriptor.Kind, field, raw)
}

func convert[T any](raw any) (T, bool) {
	var zero T
	switch target := any(&zero).(type) {
	case *int64:
		if f, ok := raw.(float64); ok && f == float64(int64(f)) {
			*target = int64(f)
			return zero, true
		}
	case *int:
		if f, ok := raw.(float64); ok && f == float64(int(f)) {
			*target = int(f)
			return zero, true
		}
	case *string:
		if f, ok := raw.(float64); ok {
			*target = strconv.FormatFloat(f, 'f', -1, 64)
			return zero, true
		}
	}
	return zero, false
}
