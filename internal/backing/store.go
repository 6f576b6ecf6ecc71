// Package backing implements the declared-field store both user data
// backings are built on. A store only accepts fields its backing declares;
// absence is tracked separately from the empty string.
package backing

import (
	"errors"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
)

// Store holds raw values for the fields declared by one backing.
type Store struct {
	backing  fields.Backing
	declared []fields.Name
	values   map[fields.Name]string
}

// New constructs an empty store for backing b.
func New(b fields.Backing) *Store {
	return &Store{
		backing:  b,
		declared: fields.DeclaredBy(b),
		values:   map[fields.Name]string{},
	}
}

// Backing returns the backing this store serves.
func (s *Store) Backing() fields.Backing {
	return s.backing
}

// Declares reports whether name belongs to this backing.
func (s *Store) Declares(name fields.Name) bool {
	info, ok := fields.InfoFor(name)
	return ok && info.DeclaredBy(s.backing)
}

// Fields returns the declared field names in registry order.
func (s *Store) Fields() []fields.Name {
	out := make([]fields.Name, len(s.declared))
	copy(out, s.declared)
	return out
}

// Get returns the raw value held for name.
func (s *Store) Get(name fields.Name) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Value returns a copy of the raw value, nil when absent or undeclared.
func (s *Store) Value(name fields.Name) *string {
	value, ok := s.values[name]
	if !ok {
		return nil
	}
	return &value
}

// Set stores value for name. It returns false, storing nothing, when the
// backing does not declare name.
func (s *Store) Set(name fields.Name, value string) bool {
	if !s.Declares(name) {
		return false
	}
	s.values[name] = value
	return true
}

// SetValue stores *value, or clears name when value is nil.
func (s *Store) SetValue(name fields.Name, value *string) bool {
	if value == nil {
		return s.Clear(name)
	}
	return s.Set(name, *value)
}

// Clear marks name as absent. It returns false when name is not declared.
func (s *Store) Clear(name fields.Name) bool {
	if !s.Declares(name) {
		return false
	}
	delete(s.values, name)
	return true
}

// Values returns a copy of every present raw value.
func (s *Store) Values() map[fields.Name]string {
	out := make(map[fields.Name]string, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// Len returns the number of present values.
func (s *Store) Len() int {
	return len(s.values)
}

// Validate checks every present value, joining all failures.
func (s *Store) Validate() error {
	var errs []error
	for _, name := range s.declared {
		value, ok := s.values[name]
		if !ok {
			continue
		}
		if err := pii.Validate(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wrap shapes one normalized wire value, e.g. as a single element list.
type Wrap func(name fields.Name, value string) any

// PayloadOptions controls payload materialization.
type PayloadOptions struct {
	// SkipHashing sends normalized values in the clear, for debugging only.
	SkipHashing bool
	Wrap        Wrap
}

// Payload materializes the wire parameters: one key per present field,
// normalized and hashed where the registry requires it. Values that normalize
// to the empty string are omitted.
func (s *Store) Payload(opts PayloadOptions) map[string]any {
	payload := make(map[string]any, len(s.values))
	for _, name := range s.declared {
		raw, ok := s.values[name]
		if !ok {
			continue
		}
		info, _ := fields.InfoFor(name)
		value := pii.Normalize(name, raw)
		if info.Hashed && !opts.SkipHashing {
			value = pii.Hash(value)
		}
		if value == "" {
			continue
		}
		if opts.Wrap != nil {
			payload[info.WireKey] = opts.Wrap(name, value)
			continue
		}
		payload[info.WireKey] = value
	}
	return payload
}
