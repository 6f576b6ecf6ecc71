package openapi

import (
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/serverside"
)

const sha256Pattern = "^[a-f0-9]{64}$"

var componentNames = map[fields.Backing]string{
	fields.BackingServer:       "ServerUserData",
	fields.BackingBusinessData: "BusinessDataUserData",
}

func componentRef(backing fields.Backing) string {
	return "#/components/schemas/" + componentNames[backing]
}

// backingSchema describes the payload a backing materializes, keyed by wire
// key. present marks the fields the described record holds.
func backingSchema(backing fields.Backing, present map[fields.Name]bool) map[string]any {
	properties := map[string]any{}
	for _, name := range fields.DeclaredBy(backing) {
		info, _ := fields.InfoFor(name)
		properties[info.WireKey] = propertySchema(backing, info, present[name])
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func propertySchema(backing fields.Backing, info fields.Info, present bool) map[string]any {
	value := map[string]any{"type": "string"}
	if info.Hashed {
		value["pattern"] = sha256Pattern
	}

	schema := value
	if backing == fields.BackingServer && serverside.ListValued(info.Name) {
		schema = map[string]any{
			"type":     "array",
			"items":    value,
			"maxItems": 1,
		}
	}
	if info.Description != "" {
		schema["description"] = info.Description
	}
	schema["x-field"] = info.Name.String()
	schema["x-category"] = info.Category.String()
	schema["x-hashed"] = info.Hashed
	if present {
		schema["x-present"] = true
	}
	return schema
}
