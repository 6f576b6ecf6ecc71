// Package openapi describes the two user data payload shapes as an OpenAPI
// document generated from the field registry.
package openapi

import (
	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/fields"
)

type generator struct {
	settings settings
}

// NewGenerator constructs an OpenAPI schema generator. The returned value is
// immutable and safe for concurrent use.
func NewGenerator(opts ...GeneratorOption) adsignal.SchemaGenerator {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return generator{settings: s}
}

// Option wires the OpenAPI schema generator into a UserData.
func Option(opts ...GeneratorOption) adsignal.Option {
	return adsignal.WithSchemaGenerator(NewGenerator(opts...))
}

// Generate builds the document. Properties of fields u holds are tagged with
// x-present; values are never included.
func (g generator) Generate(u *adsignal.UserData) (adsignal.SchemaDocument, error) {
	document, err := buildDocument(g.settings, presence(u))
	if err != nil {
		return adsignal.SchemaDocument{}, err
	}
	return adsignal.SchemaDocument{Format: adsignal.SchemaFormatOpenAPI, Document: document}, nil
}

func presence(u *adsignal.UserData) presenceSet {
	out := presenceSet{
		fields.BackingServer:       {},
		fields.BackingBusinessData: {},
	}
	if u == nil {
		return out
	}
	for name := range u.Server().Values() {
		out[fields.BackingServer][name] = true
	}
	for name := range u.BusinessData().Values() {
		out[fields.BackingBusinessData][name] = true
	}
	return out
}
