package serverside_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
	"github.com/goliatone/go-adsignal/serverside"
)

func str(v string) *string {
	return &v
}

func TestNewUserDataKeepsOnlyProvidedValues(t *testing.T) {
	u := serverside.NewUserData(serverside.Params{
		Email:  str("joe@eg.com"),
		Gender: str("m"),
		Fbp:    str("fb.1.111.AAA"),
	})
	if got, _ := u.Get(fields.Email); got != "joe@eg.com" {
		t.Fatalf("expected email, got %q", got)
	}
	if u.Value(fields.Phone) != nil {
		t.Fatalf("expected phone to be unset")
	}
	if u.Len() != 3 {
		t.Fatalf("expected 3 present values, got %d", u.Len())
	}
	if u.Declares(fields.Address) {
		t.Fatalf("server backing must not declare address")
	}
}

func TestPayloadShape(t *testing.T) {
	u := serverside.NewUserData(serverside.Params{
		Email:           str("Joe@Eg.com"),
		ClientIPAddress: str("192.168.1.47"),
		Fbc:             str("fb.1.222.BBB"),
	})
	u.Set(fields.F5First, "Joseph")

	want := map[string]any{
		"em":                []string{"joe@eg.com"},
		"client_ip_address": "192.168.1.47",
		"fbc":               "fb.1.222.BBB",
		"f5first":           "josep",
	}
	if diff := cmp.Diff(want, u.Payload(serverside.WithoutHashing())); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	hashed := u.Payload()
	if diff := cmp.Diff([]string{pii.Hash("joe@eg.com")}, hashed["em"]); diff != "" {
		t.Fatalf("hashed email mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSONUsesHashedPayload(t *testing.T) {
	u := serverside.NewUserData(serverside.Params{Email: str("joe@eg.com")})
	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string][]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["em"][0] != pii.Hash("joe@eg.com") {
		t.Fatalf("expected hashed email on the wire, got %v", decoded["em"])
	}
}
