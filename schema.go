package adsignal

import "github.com/goliatone/go-adsignal/fields"

// FieldDescriptor describes one registry field and, when generated from a
// record, whether it currently resolves to a value.
type FieldDescriptor struct {
	Field    fields.Name      `json:"field"`
	WireKey  string           `json:"wire_key"`
	Category fields.Category  `json:"category"`
	Backings []fields.Backing `json:"backings"`
	Hashed   bool             `json:"hashed"`
	Present  bool             `json:"present"`
	Source   fields.Backing   `json:"source,omitempty"`
}

// DefaultSchemaGenerator returns the built-in descriptor-based schema generator.
func DefaultSchemaGenerator() SchemaGenerator {
	return descriptorGenerator{}
}

type descriptorGenerator struct{}

func (descriptorGenerator) Generate(u *UserData) (SchemaDocument, error) {
	return SchemaDocument{
		Format:   SchemaFormatDescriptors,
		Document: DescribeFields(u),
	}, nil
}

// DescribeFields returns a descriptor per registry field in registry order.
// A nil record describes the registry alone.
func DescribeFields(u *UserData) []FieldDescriptor {
	all := fields.All()
	out := make([]FieldDescriptor, 0, len(all))
	for _, info := range all {
		descriptor := FieldDescriptor{
			Field:    info.Name,
			WireKey:  info.WireKey,
			Category: info.Category,
			Backings: declaringBackings(info),
			Hashed:   info.Hashed,
		}
		if u != nil {
			trace := u.Trace(info.Name)
			descriptor.Present = trace.Value != nil
			descriptor.Source = trace.Source
		}
		out = append(out, descriptor)
	}
	return out
}

// Schema describes the record using the configured schema generator.
func (u *UserData) Schema() (SchemaDocument, error) {
	return u.schemaGenerator().Generate(u)
}

func declaringBackings(info fields.Info) []fields.Backing {
	var out []fields.Backing
	for _, b := range []fields.Backing{fields.BackingServer, fields.BackingBusinessData} {
		if info.DeclaredBy(b) {
			out = append(out, b)
		}
	}
	return out
}
