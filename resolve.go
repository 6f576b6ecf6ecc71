package adsignal

import (
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/layering"
)

// Backing priorities. The conversions representation is authoritative when
// both backings hold a value because it tracks a superset of the optional
// targeting fields.
const (
	PriorityServer       = 200
	PriorityBusinessData = 100
)

var (
	// SourceServer is the conversions backing as a precedence source.
	SourceServer = layering.Source{Name: string(fields.BackingServer), Priority: PriorityServer}
	// SourceBusinessData is the business-data backing as a precedence source.
	SourceBusinessData = layering.Source{Name: string(fields.BackingBusinessData), Priority: PriorityBusinessData}

	backingChain = layering.MustChain(SourceServer, SourceBusinessData)
)

// Resolve returns the externally visible value of a field given the value
// each backing holds: the server value when present, otherwise the
// business-data value, which may itself be absent. Single-backing fields pass
// nil for the backing that does not declare them.
func Resolve(serverValue, businessValue *string) *string {
	return layering.First(serverValue, businessValue)
}
