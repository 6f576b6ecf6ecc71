package layering

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSourceNameRequired indicates a source without a name.
	ErrSourceNameRequired = errors.New("layering: source name must be provided")
	// ErrDuplicateSource indicates two sources sharing a name.
	ErrDuplicateSource = errors.New("layering: source names must be unique")
	// ErrPriorityOrder indicates two sources sharing a priority.
	ErrPriorityOrder = errors.New("layering: priorities must be strictly ordered")
)

// Source names one contributor in a precedence chain. Higher priority values
// represent stronger sources.
type Source struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// Chain is an immutable list of sources ordered from strongest to weakest.
type Chain struct {
	sources []Source
}

// NewChain validates and sorts sources so the strongest is first.
func NewChain(sources ...Source) (Chain, error) {
	seen := make(map[string]struct{}, len(sources))
	ordered := make([]Source, len(sources))
	for i, source := range sources {
		if source.Name == "" {
			return Chain{}, ErrSourceNameRequired
		}
		if _, ok := seen[source.Name]; ok {
			return Chain{}, fmt.Errorf("%w: %s", ErrDuplicateSource, source.Name)
		}
		seen[source.Name] = struct{}{}
		ordered[i] = source
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Priority == ordered[j].Priority {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].Priority > ordered[j].Priority
	})

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Priority <= ordered[i].Priority {
			return Chain{}, fmt.Errorf("%w: %d", ErrPriorityOrder, ordered[i].Priority)
		}
	}
	return Chain{sources: ordered}, nil
}

// MustChain is NewChain for static source tables; it panics on invalid input.
func MustChain(sources ...Source) Chain {
	chain, err := NewChain(sources...)
	if err != nil {
		panic(err)
	}
	return chain
}

// Sources returns the ordered sources, strongest first.
func (c Chain) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// Len returns the number of sources in the chain.
func (c Chain) Len() int {
	return len(c.sources)
}

// Strongest returns the first source in the chain (zero source if empty).
func (c Chain) Strongest() Source {
	if len(c.sources) == 0 {
		return Source{}
	}
	return c.sources[0]
}

// Weakest returns the final source in the chain (zero source if empty).
func (c Chain) Weakest() Source {
	if len(c.sources) == 0 {
		return Source{}
	}
	return c.sources[len(c.sources)-1]
}
