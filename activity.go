package adsignal

import (
	"context"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
	"github.com/goliatone/go-adsignal/pkg/activity"
)

// WithActivityHooks emits user data events to hooks on the default channel.
// Nil hooks are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	return WithActivityEmitter(activity.NewEmitter(hooks, activity.Config{Enabled: true}))
}

// WithActivityEmitter routes user data events through emitter.
func WithActivityEmitter(emitter *activity.Emitter) Option {
	return func(cfg *config) {
		cfg.emitter = emitter
	}
}

// WithActivitySubject attributes emitted events to subject.
func WithActivitySubject(subject activity.Subject) Option {
	return func(cfg *config) {
		cfg.subject = subject
	}
}

// WithRestored marks the record as rebuilt from storage. New then skips the
// userdata.created event; writes are still reported.
func WithRestored() Option {
	return func(cfg *config) {
		cfg.restored = true
	}
}

// WithoutObservers detaches the activity emitter and the change logger set
// by earlier options. Useful for scratch copies whose writes may be thrown
// away.
func WithoutObservers() Option {
	return func(cfg *config) {
		cfg.emitter = nil
		cfg.changeLogger = nil
	}
}

// ActivityEnabled reports whether writes emit activity events.
func (u *UserData) ActivityEnabled() bool {
	return u != nil && u.cfg.emitter.Enabled()
}

func (u *UserData) eventInput() activity.UserDataEventInput {
	return activity.UserDataEventInput{
		Subject: u.cfg.subject,
		Label:   u.cfg.label,
	}
}

func (u *UserData) emitCreated() {
	if u.cfg.restored || !u.ActivityEnabled() {
		return
	}
	input := u.eventInput()
	input.Fields = presentFields(u.Snapshot())
	u.emit(activity.BuildUserDataCreatedEvent(input))
}

func (u *UserData) emitWrite(name fields.Name, value *string, backings []fields.Backing) error {
	if !u.ActivityEnabled() {
		return nil
	}
	input := u.eventInput()
	input.Field = name.String()
	input.Backings = backingNames(backings)
	if value == nil {
		return u.emit(activity.BuildFieldClearedEvent(input))
	}
	// Unhashed wire fields are digested too; events never carry raw values.
	input.ValueDigest = pii.Hash(pii.Normalize(name, *value))
	return u.emit(activity.BuildFieldSetEvent(input))
}

func (u *UserData) emitPatch(names []fields.Name) error {
	if !u.ActivityEnabled() || len(names) == 0 {
		return nil
	}
	input := u.eventInput()
	input.Fields = make([]string, len(names))
	for i, name := range names {
		input.Fields[i] = name.String()
	}
	return u.emit(activity.BuildPatchAppliedEvent(input))
}

func (u *UserData) emit(event activity.Event) error {
	return u.cfg.emitter.Emit(context.Background(), event)
}

func backingNames(backings []fields.Backing) []string {
	out := make([]string, len(backings))
	for i, b := range backings {
		out[i] = string(b)
	}
	return out
}

func presentFields(snapshot map[fields.Name]string) []string {
	var out []string
	for _, name := range fields.Names() {
		if _, ok := snapshot[name]; ok {
			out = append(out, name.String())
		}
	}
	return out
}
