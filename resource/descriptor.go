// Package resource describes remote advertising platform resources as data:
// one descriptor per resource kind listing its field names and enumerations,
// a validated field projection and a generic accessor over decoded entities.
package resource

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind indicates a resource kind missing from the table.
	ErrUnknownKind = errors.New("resource: unknown kind")
	// ErrUnknownField indicates a field the resource kind does not declare.
	ErrUnknownField = errors.New("resource: unknown field")
	// ErrUnknownEnum indicates an enumeration or enumeration key the resource
	// kind does not declare.
	ErrUnknownEnum = errors.New("resource: unknown enum")
)

// Kind names a resource type.
type Kind string

func (k Kind) String() string {
	return string(k)
}

// EnumValue is one entry of an enumeration: the symbolic key and the value
// sent on the wire.
type EnumValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Enum is a named, ordered enumeration attached to a resource kind.
type Enum struct {
	Name   string      `json:"name" yaml:"name"`
	Values []EnumValue `json:"values" yaml:"values"`
}

// Lookup returns the wire value for key.
func (e Enum) Lookup(key string) (string, bool) {
	for _, v := range e.Values {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// Contains reports whether value is one of the enumeration's wire values.
func (e Enum) Contains(value string) bool {
	for _, v := range e.Values {
		if v.Value == value {
			return true
		}
	}
	return false
}

// Descriptor declares the shape of one resource kind. Readable kinds can be
// fetched individually by id.
type Descriptor struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	TypeName string   `json:"type_name" yaml:"type_name"`
	Fields   []string `json:"fields" yaml:"fields"`
	Enums    []Enum   `json:"enums,omitempty" yaml:"enums,omitempty"`
	Readable bool     `json:"readable" yaml:"readable"`
}

// HasField reports whether the kind declares field.
func (d Descriptor) HasField(field string) bool {
	for _, f := range d.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Enum returns the enumeration called name.
func (d Descriptor) Enum(name string) (Enum, bool) {
	for _, e := range d.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

// EnumValue resolves key inside enumeration name to its wire value.
func (d Descriptor) EnumValue(name, key string) (string, error) {
	e, ok := d.Enum(name)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownEnum, d.Kind, name)
	}
	value, ok := e.Lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s[%q]", ErrUnknownEnum, d.Kind, name, key)
	}
	return value, nil
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Fields = append([]string(nil), d.Fields...)
	if len(d.Enums) > 0 {
		out.Enums = make([]Enum, len(d.Enums))
		for i, e := range d.Enums {
			out.Enums[i] = Enum{Name: e.Name, Values: append([]EnumValue(nil), e.Values...)}
		}
	}
	return out
}

// All returns every descriptor in table order. Callers receive copies.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.clone()
	}
	return out
}

// Kinds returns every known kind in table order.
func Kinds() []Kind {
	out := make([]Kind, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.Kind
	}
	return out
}

// Lookup resolves a kind by its snake case name or its type name, ignoring
// case and surrounding whitespace.
func Lookup(name string) (Descriptor, error) {
	key := strings.TrimSpace(name)
	for _, d := range descriptors {
		if strings.EqualFold(string(d.Kind), key) || strings.EqualFold(d.TypeName, key) {
			return d.clone(), nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MustLookup is Lookup for kinds known at compile time.
func MustLookup(kind Kind) Descriptor {
	d, err := Lookup(string(kind))
	if err != nil {
		panic(err)
	}
	return d
}
