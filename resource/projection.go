package resource

import (
	"errors"
	"fmt"
	"strings"
)

// FieldsParam is the query parameter carrying a projection.
const FieldsParam = "fields"

// Projection is a validated, de-duplicated list of fields to request for one
// resource kind. The zero value requests the platform defaults.
type Projection struct {
	kind   Kind
	fields []string
}

// NewProjection validates names against d. Duplicates keep their first
// position.
func NewProjection(d Descriptor, names ...string) (Projection, error) {
	p := Projection{kind: d.Kind}
	seen := make(map[string]struct{}, len(names))
	var errs []error
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if !d.HasField(name) {
			errs = append(errs, fmt.Errorf("%w: %s.%s", ErrUnknownField, d.Kind, name))
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		p.fields = append(p.fields, name)
	}
	if len(errs) > 0 {
		return Projection{}, errors.Join(errs...)
	}
	return p, nil
}

// ParseProjection reads a comma separated fields parameter.
func ParseProjection(d Descriptor, param string) (Projection, error) {
	if strings.TrimSpace(param) == "" {
		return Projection{kind: d.Kind}, nil
	}
	return NewProjection(d, strings.Split(param, ",")...)
}

// AllFields projects every field the kind declares.
func AllFields(d Descriptor) Projection {
	return Projection{kind: d.Kind, fields: append([]string(nil), d.Fields...)}
}

// Kind returns the kind the projection was validated against.
func (p Projection) Kind() Kind {
	return p.kind
}

// Fields returns the projected field names.
func (p Projection) Fields() []string {
	return append([]string(nil), p.fields...)
}

// Empty reports whether no field was requested.
func (p Projection) Empty() bool {
	return len(p.fields) == 0
}

// Includes reports whether field is projected.
func (p Projection) Includes(field string) bool {
	for _, f := range p.fields {
		if f == field {
			return true
		}
	}
	return false
}

// String renders the fields parameter value.
func (p Projection) String() string {
	return strings.Join(p.fields, ",")
}

// Params merges the projection into request parameters without mutating
// params. Empty projections leave the fields parameter out.
func (p Projection) Params(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	if !p.Empty() {
		out[FieldsParam] = p.String()
	}
	return out
}
