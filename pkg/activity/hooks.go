// Package activity carries user data lifecycle events to pluggable hooks.
package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrIncompleteEvent is reported by Event.Check when routing fields are missing.
var ErrIncompleteEvent = errors.New("activity: event needs verb, object type and object id")

// Event is one lifecycle occurrence. IDs are plain strings so callers are
// free to use whatever identifier scheme they have.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Check returns ErrIncompleteEvent when the event cannot be routed.
func (e Event) Check() error {
	if e.Verb == "" || e.ObjectType == "" || e.ObjectID == "" {
		return ErrIncompleteEvent
	}
	return nil
}

// ActivityHook receives normalized events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function to ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

// Notify implements ActivityHook.
func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// HookError ties a hook failure to the hook position in Hooks.
type HookError struct {
	Index int
	Verb  string
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("activity: hook %d on %s: %v", e.Index, e.Verb, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Hooks notifies every member in order.
type Hooks []ActivityHook

// Enabled reports whether any hook is attached.
func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes event and hands it to each hook. Events that cannot be
// routed are dropped silently. Every hook runs even when an earlier one
// fails; failures come back joined, one HookError per hook.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	event = NormalizeEvent(event)
	if event.Check() != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for i, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			errs = append(errs, &HookError{Index: i, Verb: event.Verb, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Filter forwards only events whose verb starts with one of prefixes.
// With no prefixes every event passes.
func Filter(hook ActivityHook, prefixes ...string) ActivityHook {
	if hook == nil || len(prefixes) == 0 {
		return hook
	}
	return HookFunc(func(ctx context.Context, event Event) error {
		for _, prefix := range prefixes {
			if strings.HasPrefix(event.Verb, prefix) {
				return hook.Notify(ctx, event)
			}
		}
		return nil
	})
}

// NormalizeEvent trims identifiers, copies metadata and recipients so hooks
// cannot alias the caller, and stamps OccurredAt in UTC when unset.
func NormalizeEvent(event Event) Event {
	for _, field := range []*string{
		&event.Verb, &event.ActorID, &event.UserID, &event.TenantID,
		&event.ObjectType, &event.ObjectID, &event.Channel, &event.DefinitionCode,
	} {
		*field = strings.TrimSpace(*field)
	}
	event.Metadata = cloneMap(event.Metadata)
	if len(event.Recipients) == 0 {
		event.Recipients = nil
	} else {
		event.Recipients = append([]string(nil), event.Recipients...)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return event
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
