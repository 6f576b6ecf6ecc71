package adsignal

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
)

// Function represents a callable registered against evaluators.
type Function func(args ...any) (any, error)

// FunctionRegistry stores custom functions. Lookups ignore case; the name
// used at registration is the one bound in evaluator environments.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]registeredFunction
}

type registeredFunction struct {
	name string
	fn   Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]registeredFunction),
	}
}

// DefaultFunctions returns a registry preloaded with the user data helpers:
//
//	normalize(field, value) string
//	sha256(value) string
func DefaultFunctions() *FunctionRegistry {
	registry := NewFunctionRegistry()
	_ = registry.Register("normalize", normalizeFunction)
	_ = registry.Register("sha256", sha256Function)
	return registry
}

func normalizeFunction(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("adsignal: normalize expects 2 arguments, got %d", len(args))
	}
	key, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("adsignal: normalize field must be a string")
	}
	name, err := fields.Lookup(key)
	if err != nil {
		return nil, err
	}
	value, ok := args[1].(string)
	if !ok {
		return nil, nil
	}
	return pii.Normalize(name, value), nil
}

func sha256Function(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("adsignal: sha256 expects 1 argument, got %d", len(args))
	}
	value, ok := args[0].(string)
	if !ok {
		return nil, nil
	}
	return pii.Hash(value), nil
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("adsignal: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("adsignal: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]registeredFunction)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("adsignal: function %q already registered", name)
	}
	r.functions[key] = registeredFunction{name: name, fn: fn}
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]registeredFunction, len(r.functions)),
	}
	for key, entry := range r.functions {
		clone.functions[key] = entry
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("adsignal: function registry is nil")
	}
	r.mu.RLock()
	entry, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("adsignal: function %q not registered", name)
	}
	return entry.fn(args...)
}

// Names returns registered function names, as registered, sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for _, entry := range r.functions {
		names = append(names, entry.name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry configures the default evaluator to use registry.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *config) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the default evaluator.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *config) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
