package adsignal

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
	"github.com/goliatone/go-adsignal/pkg/activity"
)

func TestActivityEventsForWrites(t *testing.T) {
	capture := &activity.CaptureHook{}
	u := New(Params{Email: String("a@x.com")},
		WithActivityHooks(activity.Hooks{nil, capture}),
		WithActivitySubject(activity.Subject{TenantID: "tenant-1", ObjectID: "purchase-1"}),
	)
	if !u.ActivityEnabled() {
		t.Fatalf("expected activity to be enabled")
	}

	u.SetEmail("B@X.com").Clear(fields.Fbp)

	events := capture.Events()
	if len(events) != 3 {
		t.Fatalf("expected created, set and cleared events, got %d", len(events))
	}
	created, set, cleared := events[0], events[1], events[2]
	if created.Verb != activity.VerbUserDataCreated || created.ObjectID != "purchase-1" {
		t.Fatalf("unexpected created event %+v", created)
	}
	if set.Verb != activity.VerbFieldSet || set.Channel != "userdata" || set.TenantID != "tenant-1" {
		t.Fatalf("unexpected set event %+v", set)
	}
	if set.Metadata["field"] != "email" {
		t.Fatalf("expected email field metadata, got %+v", set.Metadata)
	}
	if set.Metadata["value_sha256"] != pii.Hash("b@x.com") {
		t.Fatalf("expected digest of normalized value, got %v", set.Metadata["value_sha256"])
	}
	for _, value := range set.Metadata {
		if value == "B@X.com" {
			t.Fatalf("raw value leaked into event metadata: %+v", set.Metadata)
		}
	}
	if cleared.Verb != activity.VerbFieldCleared || cleared.Metadata["field"] != "fbp" {
		t.Fatalf("unexpected cleared event %+v", cleared)
	}
	backings, _ := cleared.Metadata["backings"].([]string)
	if len(backings) != 1 || backings[0] != "server" {
		t.Fatalf("expected server-only clear, got %v", cleared.Metadata["backings"])
	}
}

func TestActivityPatchEvent(t *testing.T) {
	capture := &activity.CaptureHook{}
	u := New(Params{}, WithActivityHooks(activity.Hooks{capture}), WithLabel("lead-3"))

	u.ApplyPatch(Patch{fields.Zip: String("94025"), fields.City: String("Menlo Park"), "bogus": String("x")})

	last, ok := capture.Last()
	if !ok {
		t.Fatalf("expected events")
	}
	if last.Verb != activity.VerbPatchApplied {
		t.Fatalf("expected patch event last, got %s", last.Verb)
	}
	if last.ObjectID != "lead-3" {
		t.Fatalf("expected label as object id, got %q", last.ObjectID)
	}
	patched, _ := last.Metadata["fields"].([]string)
	if len(patched) != 2 || patched[0] != "city" || patched[1] != "zip" {
		t.Fatalf("expected known fields in registry order, got %v", last.Metadata["fields"])
	}
}

func TestActivityHookFailureIsLogged(t *testing.T) {
	boom := errors.New("sink down")
	var logged []ChangeLogEvent
	u := New(Params{},
		WithActivityHooks(activity.Hooks{activity.HookFunc(func(context.Context, activity.Event) error { return boom })}),
		WithChangeLogger(ChangeLoggerFunc(func(event ChangeLogEvent) { logged = append(logged, event) })),
	)

	u.SetPhone("16505551234")

	if got, _ := u.Get(fields.Phone); got != "16505551234" {
		t.Fatalf("hook failure must not block the write, got %q", got)
	}
	if len(logged) != 1 || !errors.Is(logged[0].Err, boom) {
		t.Fatalf("expected hook error logged, got %+v", logged)
	}
}

func TestActivityDisabledByDefault(t *testing.T) {
	u := New(Params{})
	if u.ActivityEnabled() {
		t.Fatalf("expected activity disabled without hooks")
	}
	disabled := New(Params{}, WithActivityEmitter(activity.NewEmitter(activity.Hooks{&activity.CaptureHook{}}, activity.Config{})))
	if disabled.ActivityEnabled() {
		t.Fatalf("expected disabled emitter to stay disabled")
	}
}

func TestActivityPatchHookFailureIsLoggedAsPatch(t *testing.T) {
	boom := errors.New("sink down")
	var logged []ChangeLogEvent
	u := New(Params{},
		WithActivityHooks(activity.Hooks{activity.HookFunc(func(_ context.Context, event activity.Event) error {
			if event.Verb == activity.VerbPatchApplied {
				return boom
			}
			return nil
		})}),
		WithChangeLogger(ChangeLoggerFunc(func(event ChangeLogEvent) { logged = append(logged, event) })),
		WithLabel("lead-4"),
	)

	u.ApplyPatch(Patch{fields.Zip: String("94025")})

	if len(logged) != 2 {
		t.Fatalf("expected field write and patch failure, got %+v", logged)
	}
	if logged[0].Op != ChangeSet || logged[0].Field != fields.Zip || logged[0].Err != nil {
		t.Fatalf("unexpected field write entry %+v", logged[0])
	}
	failed := logged[1]
	if failed.Op != ChangePatch || failed.Field != "" || failed.Label != "lead-4" || !errors.Is(failed.Err, boom) {
		t.Fatalf("expected patch failure entry, got %+v", failed)
	}
}

func TestRestoredRecordSkipsCreated(t *testing.T) {
	capture := &activity.CaptureHook{}
	u := New(Params{Email: String("a@x.com")}, WithActivityHooks(activity.Hooks{capture}), WithRestored())

	if len(capture.Events()) != 0 {
		t.Fatalf("restored record reported %v", capture.Verbs())
	}
	u.Set(fields.Zip, "94025")
	verbs := capture.Verbs()
	if len(verbs) != 1 || verbs[0] != activity.VerbFieldSet {
		t.Fatalf("expected writes still reported, got %v", verbs)
	}
}

func TestWithoutObserversDetachesEarlierOptions(t *testing.T) {
	capture := &activity.CaptureHook{}
	var logged []ChangeLogEvent
	u := New(Params{},
		WithActivityHooks(activity.Hooks{capture}),
		WithChangeLogger(ChangeLoggerFunc(func(event ChangeLogEvent) { logged = append(logged, event) })),
		WithoutObservers(),
	)

	u.SetEmail("a@x.com").ApplyPatch(Patch{fields.Zip: String("94025")}).Set("nickname", "x")

	if u.ActivityEnabled() {
		t.Fatalf("expected activity detached")
	}
	if len(capture.Events()) != 0 || len(logged) != 0 {
		t.Fatalf("expected no observers, got events %v and log %+v", capture.Verbs(), logged)
	}
	if got, _ := u.Get(fields.Zip); got != "94025" {
		t.Fatalf("writes must still apply, got %q", got)
	}
}
