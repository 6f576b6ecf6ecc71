package openapi

import (
	"github.com/goliatone/go-adsignal/fields"
)

var backings = []fields.Backing{fields.BackingServer, fields.BackingBusinessData}

// presenceSet lists, per backing, the fields a record holds.
type presenceSet map[fields.Backing]map[fields.Name]bool

// buildDocument assembles the document as plain maps so it renders the same
// through encoding/json and yaml.v3.
func buildDocument(s settings, present presenceSet) (map[string]any, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	schemas := make(map[string]any, len(backings))
	paths := map[string]any{}
	for _, backing := range backings {
		schemas[componentNames[backing]] = backingSchema(backing, present[backing])

		endpoint, ok := s.endpoints[backing]
		if !ok {
			continue
		}
		item, _ := paths[endpoint.Path].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[endpoint.Path] = item
		}
		item[endpoint.method()] = operation(s, backing, endpoint)
	}

	info := map[string]any{"title": s.title, "version": s.version}
	if s.description != "" {
		info["description"] = s.description
	}
	return map[string]any{
		"openapi":    s.openAPI,
		"info":       info,
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}, nil
}

func operation(s settings, backing fields.Backing, endpoint Endpoint) map[string]any {
	id := endpoint.OperationID
	if id == "" {
		id = endpoint.method() + ":" + endpoint.Path
	}

	responses := make(map[string]any, len(s.responses))
	for _, status := range s.statuses() {
		responses[status] = map[string]any{"description": s.responses[status]}
	}

	// Both endpoints wrap the record in a user_data member.
	envelope := map[string]any{
		"type":     "object",
		"required": []string{"user_data"},
		"properties": map[string]any{
			"user_data": map[string]any{"$ref": componentRef(backing)},
		},
	}

	op := map[string]any{
		"operationId": id,
		"requestBody": map[string]any{
			"required": true,
			"content":  map[string]any{s.contentType: map[string]any{"schema": envelope}},
		},
		"responses": responses,
	}
	if endpoint.Summary != "" {
		op["summary"] = endpoint.Summary
	}
	return op
}
