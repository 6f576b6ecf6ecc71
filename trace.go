package adsignal

import (
	"encoding/json"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/layering"
)

// Trace captures provenance for one field across the backings that produced
// its resolved value. Values are raw; treat traces as PII.
type Trace struct {
	Field  fields.Name    `json:"field"`
	Value  *string        `json:"value,omitempty"`
	Source fields.Backing `json:"source,omitempty"`
	Layers []Provenance   `json:"layers"`
}

// Provenance details how one backing contributed to a traced field.
type Provenance struct {
	Backing  fields.Backing `json:"backing"`
	Priority int            `json:"priority"`
	Declared bool           `json:"declared"`
	Found    bool           `json:"found"`
	Value    *string        `json:"value,omitempty"`
}

// Trace reports, strongest backing first, what each backing holds for name
// and which one supplied the resolved value.
func (u *UserData) Trace(name fields.Name) Trace {
	result := layering.Resolve(backingChain, u.lookup(name))
	trace := Trace{
		Field:  name,
		Value:  result.Value,
		Layers: make([]Provenance, 0, len(result.Candidates)),
	}
	if result.Found {
		trace.Source = fields.Backing(result.Source.Name)
	}
	for _, candidate := range result.Candidates {
		trace.Layers = append(trace.Layers, Provenance{
			Backing:  fields.Backing(candidate.Source.Name),
			Priority: candidate.Source.Priority,
			Declared: candidate.Declared,
			Found:    candidate.Found(),
			Value:    candidate.Value,
		})
	}
	return trace
}

// Traces returns a trace for every registry field in registry order.
func (u *UserData) Traces() []Trace {
	names := fields.Names()
	out := make([]Trace, len(names))
	for i, name := range names {
		out[i] = u.Trace(name)
	}
	return out
}

func (u *UserData) lookup(name fields.Name) layering.Lookup[string] {
	return func(source layering.Source) (*string, bool) {
		switch fields.Backing(source.Name) {
		case fields.BackingServer:
			return u.server.Value(name), u.server.Declares(name)
		case fields.BackingBusinessData:
			return u.business.Value(name), u.business.Declares(name)
		default:
			return nil, false
		}
	}
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
