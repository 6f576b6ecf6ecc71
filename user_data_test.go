package adsignal

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
)

func TestNewResolvesAcrossBackings(t *testing.T) {
	u := New(Params{
		Email:   String("a@x.com"),
		Address: String("221B Baker St"),
	})

	if got, ok := u.Get(fields.Email); !ok || got != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q present=%v", got, ok)
	}
	if got, ok := u.Server().Get(fields.Email); !ok || got != "a@x.com" {
		t.Fatalf("expected server email populated, got %q", got)
	}
	if got, ok := u.BusinessData().Get(fields.Email); !ok || got != "a@x.com" {
		t.Fatalf("expected business email populated, got %q", got)
	}
	if got, ok := u.Get(fields.Address); !ok || got != "221B Baker St" {
		t.Fatalf("expected address, got %q present=%v", got, ok)
	}
	if u.Server().Declares(fields.Address) {
		t.Fatalf("server backing must not declare address")
	}
	if value := u.Value(fields.Gender); value != nil {
		t.Fatalf("expected gender absent, got %q", *value)
	}
}

func TestNewAppliesTruncatedNamesToServer(t *testing.T) {
	u := New(Params{
		FirstName: String("joseph"),
		F5First:   String("josep"),
		F5Last:    String("smith"),
		FI:        String("j"),
	})

	for name, want := range map[fields.Name]string{
		fields.F5First: "josep",
		fields.F5Last:  "smith",
		fields.FI:      "j",
	} {
		got, ok := u.Server().Get(name)
		if !ok || got != want {
			t.Fatalf("expected server %s=%q, got %q present=%v", name, want, got, ok)
		}
		if u.BusinessData().Declares(name) {
			t.Fatalf("business backing must not declare %s", name)
		}
	}
}

func TestWriteThroughConsistencyForSharedFields(t *testing.T) {
	u := New(Params{})
	for i, name := range fields.InCategory(fields.CategoryShared) {
		value := "value-" + string(rune('a'+i))
		u.Set(name, value)

		server, sok := u.Server().Get(name)
		business, bok := u.BusinessData().Get(name)
		if !sok || !bok || server != value || business != value {
			t.Fatalf("%s: expected both backings to hold %q, got server=%q(%v) business=%q(%v)", name, value, server, sok, business, bok)
		}
	}
}

func TestSingleBackingPassThrough(t *testing.T) {
	u := New(Params{})
	for _, name := range fields.InCategory(fields.CategoryServerOnly) {
		u.Set(name, "server:"+name.String())
		if got := u.Value(name); got == nil || *got != "server:"+name.String() {
			t.Fatalf("%s: expected server value, got %v", name, got)
		}
		if u.BusinessData().Len() != 0 {
			t.Fatalf("%s: business backing must stay empty, got %v", name, u.BusinessData().Values())
		}
	}

	u.Set(fields.Address, "1 Main St")
	if got, ok := u.Get(fields.Address); !ok || got != "1 Main St" {
		t.Fatalf("expected business-only address, got %q", got)
	}
	if _, ok := u.Server().Get(fields.Address); ok {
		t.Fatalf("server backing must not hold address")
	}
}

func TestPrecedencePrefersServerValue(t *testing.T) {
	u := New(Params{Email: String("shared@x.com")})

	// Diverge the backings directly to observe resolution.
	u.BusinessData().Set(fields.Email, "business@x.com")
	if got, _ := u.Get(fields.Email); got != "shared@x.com" {
		t.Fatalf("expected server value to win, got %q", got)
	}

	u.Server().Clear(fields.Email)
	if got, _ := u.Get(fields.Email); got != "business@x.com" {
		t.Fatalf("expected business fallback, got %q", got)
	}

	u.BusinessData().Clear(fields.Email)
	if u.Has(fields.Email) {
		t.Fatalf("expected email absent once both backings are cleared")
	}
}

func TestSetTwiceKeepsLatestAndLeavesBusinessUntouched(t *testing.T) {
	u := New(Params{})
	u.SetFbp("fb.1.111.AAA")
	u.SetFbp("fb.1.222.BBB")

	if got, _ := u.Get(fields.Fbp); got != "fb.1.222.BBB" {
		t.Fatalf("expected latest fbp, got %q", got)
	}
	if u.BusinessData().Len() != 0 {
		t.Fatalf("expected business backing unaffected, got %v", u.BusinessData().Values())
	}
}

func TestFluentSetterOverridesConstructorValue(t *testing.T) {
	u := New(Params{FirstName: String("joe")})
	if u.SetFirstName("joseph") != u {
		t.Fatalf("expected fluent setter to return the same record")
	}

	if got, _ := u.Get(fields.FirstName); got != "joseph" {
		t.Fatalf("expected joseph, got %q", got)
	}
	server, _ := u.Server().Get(fields.FirstName)
	business, _ := u.BusinessData().Get(fields.FirstName)
	if server != "joseph" || business != "joseph" {
		t.Fatalf("expected both backings to hold joseph, got %q and %q", server, business)
	}
}

func TestIdempotenceAndIsolation(t *testing.T) {
	u := New(Params{
		Email: String("a@x.com"),
		Phone: String("+1 555 0100"),
		Fbc:   String("fb.1.1.click"),
	})
	before := u.Snapshot()

	u.SetEmail("a@x.com").SetEmail("a@x.com")
	if diff := cmp.Diff(before, u.Snapshot()); diff != "" {
		t.Fatalf("repeated identical writes changed the record (-want +got):\n%s", diff)
	}

	for _, name := range fields.Names() {
		u := New(Params{Email: String("a@x.com"), Address: String("1 Main St")})
		others := u.Snapshot()
		delete(others, name)

		u.Set(name, "changed")
		after := u.Snapshot()
		delete(after, name)
		if diff := cmp.Diff(others, after); diff != "" {
			t.Fatalf("setting %s changed other fields (-want +got):\n%s", name, diff)
		}
	}
}

func TestEmptyStringIsPresent(t *testing.T) {
	u := New(Params{Email: String("")})
	got, ok := u.Get(fields.Email)
	if !ok || got != "" {
		t.Fatalf("expected present empty email, got %q present=%v", got, ok)
	}

	u.Clear(fields.Email)
	if u.Has(fields.Email) {
		t.Fatalf("expected clear to make email absent")
	}
	if _, ok := u.BusinessData().Get(fields.Email); ok {
		t.Fatalf("expected clear to reach the business backing")
	}
}

func TestApplyPatchWritesAndClears(t *testing.T) {
	u := New(Params{Email: String("a@x.com"), Zip: String("94025")})
	u.ApplyPatch(Patch{
		fields.Email:   nil,
		fields.Phone:   String("16505551234"),
		fields.Address: String("1 Hacker Way"),
		"nickname":     String("ignored"),
	})

	want := map[fields.Name]string{
		fields.Phone:   "16505551234",
		fields.Zip:     "94025",
		fields.Address: "1 Hacker Way",
	}
	if diff := cmp.Diff(want, u.Snapshot()); diff != "" {
		t.Fatalf("unexpected snapshot (-want +got):\n%s", diff)
	}
}

func TestUnknownFieldIsIgnoredAndLogged(t *testing.T) {
	var events []ChangeLogEvent
	u := New(Params{}, WithChangeLogger(ChangeLoggerFunc(func(event ChangeLogEvent) {
		events = append(events, event)
	})), WithLabel("purchase-1"))

	u.Set("nickname", "x").Set(fields.Fbc, "fb.1.1.click").Clear(fields.Email)

	if len(events) != 3 {
		t.Fatalf("expected 3 change events, got %d: %+v", len(events), events)
	}
	if events[0].Op != ChangeIgnored || !errors.Is(events[0].Err, fields.ErrUnknownField) {
		t.Fatalf("expected ignored unknown field, got %+v", events[0])
	}
	if events[1].Op != ChangeSet || events[1].Label != "purchase-1" {
		t.Fatalf("unexpected set event %+v", events[1])
	}
	if diff := cmp.Diff([]fields.Backing{fields.BackingServer}, events[1].Backings); diff != "" {
		t.Fatalf("unexpected backings (-want +got):\n%s", diff)
	}
	if events[2].Op != ChangeClear || len(events[2].Backings) != 2 {
		t.Fatalf("expected clear on both backings, got %+v", events[2])
	}
	if _, ok := u.Snapshot()["nickname"]; ok {
		t.Fatalf("unknown field must not be stored")
	}
}

func TestValidateDelegatesToBackings(t *testing.T) {
	u := New(Params{
		Email:  String("not-an-email"),
		Gender: String("x"),
	})
	err := u.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected invalid value error, got %v", err)
	}

	if _, err := Load(Params{Email: String("a@x.com"), Country: String("us")}); err != nil {
		t.Fatalf("unexpected error from Load: %v", err)
	}
	if _, err := Load(Params{Country: String("usa")}); err == nil {
		t.Fatalf("expected Load to surface validation error")
	}
}

func TestPayloadsMaterializePerBacking(t *testing.T) {
	u := New(Params{
		Email:   String(" A@X.com "),
		Address: String("1 Main St"),
	}).SetClientIPAddress("203.0.113.7")

	server := u.Server().Payload()
	business := u.BusinessData().Payload()

	emailHash := pii.Hash("a@x.com")
	if diff := cmp.Diff([]string{emailHash}, server["em"]); diff != "" {
		t.Fatalf("unexpected server email (-want +got):\n%s", diff)
	}
	if server["client_ip_address"] != "203.0.113.7" {
		t.Fatalf("expected clear text ip, got %v", server["client_ip_address"])
	}
	if business["em"] != emailHash {
		t.Fatalf("expected scalar business email hash, got %v", business["em"])
	}
	if _, ok := business["client_ip_address"]; ok {
		t.Fatalf("business payload must not carry client ip")
	}
	if _, ok := business["addr"]; !ok {
		t.Fatalf("expected business address")
	}
}

func TestParamsReproducesResolvedRecord(t *testing.T) {
	u := New(Params{Email: String("a@x.com"), F5First: String("josep"), Address: String("1 Main St")})
	u.BusinessData().Set(fields.Email, "b@x.com")
	u.Set(fields.ExternalID, "")

	params := u.Params()
	if StringValue(params.Email) != "a@x.com" {
		t.Fatalf("expected resolved server email, got %v", params.Email)
	}
	if params.ExternalID == nil {
		t.Fatalf("expected empty external id to stay present")
	}
	if params.Phone != nil {
		t.Fatalf("expected phone absent, got %q", *params.Phone)
	}
	if diff := cmp.Diff(u.Snapshot(), New(params).Snapshot()); diff != "" {
		t.Fatalf("rebuilt snapshot mismatch (-want +got):\n%s", diff)
	}
}
