package openapi

import (
	"errors"
	"sync"
	"testing"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/fields"
)

func TestNewGeneratorOptions(t *testing.T) {
	custom := NewGenerator(
		WithOpenAPIVersion("3.1.0"),
		WithInfo("Custom Service", "2.0.0", "custom schema"),
		WithEndpoint(fields.BackingServer, Endpoint{Path: "/123/events", Method: "PUT", OperationID: "putEvents", Summary: "Send events"}),
		WithContentType("application/x-www-form-urlencoded"),
		WithResponse("201", "Created"),
	)

	internal, ok := custom.(generator)
	if !ok {
		t.Fatalf("expected generator implementation, got %T", custom)
	}
	s := internal.settings

	if s.openAPI != "3.1.0" || s.title != "Custom Service" || s.description != "custom schema" {
		t.Fatalf("unexpected document settings: %+v", s)
	}
	want := Endpoint{Path: "/123/events", Method: "put", OperationID: "putEvents", Summary: "Send events"}
	if got := s.endpoints[fields.BackingServer]; got != want {
		t.Fatalf("server endpoint = %+v, want %+v", got, want)
	}
	if got := s.endpoints[fields.BackingBusinessData]; got != DefaultEndpoints()[fields.BackingBusinessData] {
		t.Fatalf("expected default business endpoint to remain, got %+v", got)
	}
	if s.contentType != "application/x-www-form-urlencoded" {
		t.Fatalf("expected content type override, got %q", s.contentType)
	}
	if statuses := s.statuses(); len(statuses) != 2 || statuses[0] != "200" || statuses[1] != "201" {
		t.Fatalf("expected 200 and 201 responses, got %v", statuses)
	}
}

func TestEndpointMergeKeepsDefaults(t *testing.T) {
	base := DefaultEndpoints()[fields.BackingServer]
	merged := base.merge(Endpoint{Summary: "Send events"})
	if merged.Path != base.Path || merged.OperationID != base.OperationID || merged.Summary != "Send events" {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}

func TestGeneratorDescribesBothBackings(t *testing.T) {
	doc, err := NewGenerator().Generate(nil)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if doc.Format != adsignal.SchemaFormatOpenAPI {
		t.Fatalf("expected format %q, got %q", adsignal.SchemaFormatOpenAPI, doc.Format)
	}
	document := doc.Document.(map[string]any)
	if document["openapi"] != "3.0.3" {
		t.Fatalf("unexpected openapi version %v", document["openapi"])
	}

	schemas := document["components"].(map[string]any)["schemas"].(map[string]any)
	server := schemas["ServerUserData"].(map[string]any)["properties"].(map[string]any)
	business := schemas["BusinessDataUserData"].(map[string]any)["properties"].(map[string]any)

	if len(server) != len(fields.DeclaredBy(fields.BackingServer)) {
		t.Fatalf("expected %d server properties, got %d", len(fields.DeclaredBy(fields.BackingServer)), len(server))
	}
	if len(business) != len(fields.DeclaredBy(fields.BackingBusinessData)) {
		t.Fatalf("expected %d business properties, got %d", len(fields.DeclaredBy(fields.BackingBusinessData)), len(business))
	}
	if _, ok := business["addr"]; !ok {
		t.Fatalf("expected business schema to carry addr")
	}
	if _, ok := server["addr"]; ok {
		t.Fatalf("server schema must not carry addr")
	}

	em := server["em"].(map[string]any)
	if em["type"] != "array" {
		t.Fatalf("expected server email to be an array, got %v", em["type"])
	}
	if em["items"].(map[string]any)["pattern"] != sha256Pattern {
		t.Fatalf("expected hashed item pattern, got %v", em["items"])
	}
	if business["em"].(map[string]any)["type"] != "string" {
		t.Fatalf("expected business email to be a string")
	}
	ip := server["client_ip_address"].(map[string]any)
	if _, ok := ip["pattern"]; ok || ip["x-hashed"] != false {
		t.Fatalf("expected unhashed client ip schema, got %v", ip)
	}

	paths := document["paths"].(map[string]any)
	if _, ok := paths["/{pixel_id}/events"]; !ok {
		t.Fatalf("expected server path, got %v", paths)
	}
	if _, ok := paths["/{page_id}/business_data"]; !ok {
		t.Fatalf("expected business path, got %v", paths)
	}
}

func TestGeneratorMarksPresentFields(t *testing.T) {
	u := adsignal.New(adsignal.Params{
		Email:   adsignal.String("a@x.com"),
		Address: adsignal.String("221B Baker St"),
	})
	doc, err := NewGenerator(WithoutEndpoint(fields.BackingBusinessData)).Generate(u)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	document := doc.Document.(map[string]any)
	schemas := document["components"].(map[string]any)["schemas"].(map[string]any)
	server := schemas["ServerUserData"].(map[string]any)["properties"].(map[string]any)
	business := schemas["BusinessDataUserData"].(map[string]any)["properties"].(map[string]any)

	if server["em"].(map[string]any)["x-present"] != true {
		t.Fatalf("expected server email marked present")
	}
	if _, ok := server["ge"].(map[string]any)["x-present"]; ok {
		t.Fatalf("gender must not be marked present")
	}
	if business["addr"].(map[string]any)["x-present"] != true {
		t.Fatalf("expected business address marked present")
	}
	if len(document["paths"].(map[string]any)) != 1 {
		t.Fatalf("expected business operation removed, got %v", document["paths"])
	}
}

func TestGeneratorRejectsInvalidSettings(t *testing.T) {
	cases := map[string][]GeneratorOption{
		"no endpoints": {
			WithoutEndpoint(fields.BackingServer),
			WithoutEndpoint(fields.BackingBusinessData),
		},
		"shared route": {
			WithEndpoint(fields.BackingBusinessData, Endpoint{Path: "/{pixel_id}/events"}),
		},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGenerator(opts...).Generate(nil)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestGeneratorConcurrentAccess(t *testing.T) {
	generator := NewGenerator()
	u := adsignal.New(adsignal.Params{Email: adsignal.String("a@x.com")})

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			doc, err := generator.Generate(u)
			if err != nil {
				t.Errorf("Generate returned error: %v", err)
				return
			}
			if doc.Document == nil {
				t.Errorf("expected document payload")
			}
		}()
	}
	wg.Wait()
}
