package layering

// Candidate is one source's view of a value. Declared is false when the
// source does not carry the value at all, which resolves the same way as an
// absent value.
type Candidate[T any] struct {
	Source   Source
	Declared bool
	Value    *T
}

// Found reports whether the candidate holds a value.
func (c Candidate[T]) Found() bool {
	return c.Declared && c.Value != nil
}

// Result is the outcome of resolving a value across a chain.
type Result[T any] struct {
	Value      *T
	Source     Source
	Found      bool
	Candidates []Candidate[T]
}

// Lookup reports the value a source holds and whether it declares it.
type Lookup[T any] func(Source) (value *T, declared bool)

// Resolve walks the chain strongest to weakest and returns the first present
// value. Every source is consulted so the result carries full provenance.
func Resolve[T any](chain Chain, lookup Lookup[T]) Result[T] {
	result := Result[T]{Candidates: make([]Candidate[T], 0, chain.Len())}
	for _, source := range chain.sources {
		var candidate Candidate[T]
		candidate.Source = source
		if lookup != nil {
			value, declared := lookup(source)
			candidate.Declared = declared
			if declared {
				candidate.Value = value
			}
		}
		result.Candidates = append(result.Candidates, candidate)
		if !result.Found && candidate.Found() {
			result.Value = candidate.Value
			result.Source = source
			result.Found = true
		}
	}
	return result
}

// First returns the first non-nil value, nil when all are absent.
func First[T any](values ...*T) *T {
	for _, value := range values {
		if value != nil {
			return value
		}
	}
	return nil
}

// MergeMaps composes maps ordered from strongest to weakest: keys present in a
// stronger map win, weaker maps only fill missing keys. Inputs are not mutated.
func MergeMaps[K comparable, V any](layers ...map[K]V) map[K]V {
	merged := map[K]V{}
	for i := len(layers) - 1; i >= 0; i-- {
		for key, value := range layers[i] {
			merged[key] = value
		}
	}
	return merged
}
