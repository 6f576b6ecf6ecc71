package fields

import (
	"errors"
	"testing"
)

func TestRegistryCategories(t *testing.T) {
	shared := InCategory(CategoryShared)
	if len(shared) != 10 {
		t.Fatalf("expected 10 shared fields, got %d: %v", len(shared), shared)
	}
	serverOnly := InCategory(CategoryServerOnly)
	if len(serverOnly) != 14 {
		t.Fatalf("expected 14 server-only fields, got %d: %v", len(serverOnly), serverOnly)
	}
	business := InCategory(CategoryBusinessDataOnly)
	if len(business) != 1 || business[0] != Address {
		t.Fatalf("expected address to be the only business-data field, got %v", business)
	}
	if got := len(All()); got != 25 {
		t.Fatalf("expected 25 registry entries, got %d", got)
	}
}

func TestDeclaredBy(t *testing.T) {
	server := DeclaredBy(BackingServer)
	business := DeclaredBy(BackingBusinessData)
	if len(server) != 24 {
		t.Fatalf("expected server backing to declare 24 fields, got %d", len(server))
	}
	if len(business) != 11 {
		t.Fatalf("expected business backing to declare 11 fields, got %d", len(business))
	}
	for _, name := range business {
		if name == Gender || name == Fbp {
			t.Fatalf("business backing should not declare %s", name)
		}
	}
	info, _ := InfoFor(Address)
	if info.DeclaredBy(BackingServer) {
		t.Fatalf("address must not be declared by the server backing")
	}
}

func TestLookupAcceptsNamesAndWireKeys(t *testing.T) {
	cases := map[string]Name{
		"email":             Email,
		" EMAIL ":           Email,
		"em":                Email,
		"addr":              Address,
		"client_ip_address": ClientIPAddress,
		"ge":                Gender,
	}
	for input, want := range cases {
		got, err := Lookup(input)
		if err != nil {
			t.Fatalf("lookup %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("lookup %q: expected %s, got %s", input, want, got)
		}
	}

	if _, err := Lookup("favourite_color"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	entries := All()
	entries[0].WireKey = "mutated"
	if Email.WireKey() != "em" {
		t.Fatalf("registry must be immutable, got wire key %q", Email.WireKey())
	}
}

func TestUnknownNameAccessors(t *testing.T) {
	n := Name("nope")
	if n.Valid() {
		t.Fatalf("expected unknown name to be invalid")
	}
	if n.Category() != CategoryUnknown {
		t.Fatalf("expected unknown category, got %s", n.Category())
	}
	if n.WireKey() != "" {
		t.Fatalf("expected empty wire key, got %q", n.WireKey())
	}
}
