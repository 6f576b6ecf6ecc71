package adsignal_test

import (
	"testing"

	adsignal "github.com/goliatone/go-adsignal"
	openapi "github.com/goliatone/go-adsignal/schema/openapi"
)

func TestOpenAPIGeneratorIntegration(t *testing.T) {
	u := adsignal.New(adsignal.Params{
		Email: adsignal.String("a@x.com"),
		Fbp:   adsignal.String("fb.1.111.AAA"),
	}, openapi.Option())

	doc, err := u.Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}
	if doc.Format != adsignal.SchemaFormatOpenAPI {
		t.Fatalf("expected format %q, got %q", adsignal.SchemaFormatOpenAPI, doc.Format)
	}
	schema, ok := doc.Document.(map[string]any)
	if !ok {
		t.Fatalf("expected schema map, got %T", doc.Document)
	}
	paths, ok := schema["paths"].(map[string]any)
	if !ok {
		t.Fatalf("expected paths map, got %T", schema["paths"])
	}
	pathItem, ok := paths["/{pixel_id}/events"].(map[string]any)
	if !ok {
		t.Fatalf("expected events path map, got %T", paths["/{pixel_id}/events"])
	}
	operation, ok := pathItem["post"].(map[string]any)
	if !ok {
		t.Fatalf("expected post operation map, got %T", pathItem["post"])
	}
	requestBody, ok := operation["requestBody"].(map[string]any)
	if !ok {
		t.Fatalf("expected requestBody map, got %T", operation["requestBody"])
	}
	content, ok := requestBody["content"].(map[string]any)
	if !ok {
		t.Fatalf("expected content map, got %T", requestBody["content"])
	}
	media, ok := content["application/json"].(map[string]any)
	if !ok {
		t.Fatalf("expected application/json content, got %T", content["application/json"])
	}
	bodySchema, ok := media["schema"].(map[string]any)
	if !ok {
		t.Fatalf("expected schema map, got %T", media["schema"])
	}
	properties, ok := bodySchema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map, got %T", bodySchema["properties"])
	}
	ref, ok := properties["user_data"].(map[string]any)
	if !ok || ref["$ref"] != "#/components/schemas/ServerUserData" {
		t.Fatalf("expected user_data ref, got %v", properties["user_data"])
	}
}

func TestDefaultSchemaDescribesFields(t *testing.T) {
	u := adsignal.New(adsignal.Params{Address: adsignal.String("221B Baker St")})
	doc, err := u.Schema()
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}
	if doc.Format != adsignal.SchemaFormatDescriptors {
		t.Fatalf("expected descriptors, got %q", doc.Format)
	}
	descriptors, ok := doc.Document.([]adsignal.FieldDescriptor)
	if !ok {
		t.Fatalf("expected descriptors slice, got %T", doc.Document)
	}
	last := descriptors[len(descriptors)-1]
	if last.WireKey != "addr" || !last.Present || last.Source != "business_data" {
		t.Fatalf("unexpected address descriptor: %+v", last)
	}
	if descriptors[0].Present {
		t.Fatalf("email should not be present: %+v", descriptors[0])
	}
	if len(descriptors[0].Backings) != 2 {
		t.Fatalf("email should be declared by both backings: %+v", descriptors[0])
	}
}
