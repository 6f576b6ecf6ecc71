package adsignal

import "github.com/goliatone/go-adsignal/fields"

// ChangeOp names the kind of write recorded by a ChangeLogEvent.
type ChangeOp string

const (
	ChangeSet     ChangeOp = "set"
	ChangeClear   ChangeOp = "clear"
	ChangeIgnored ChangeOp = "ignored"
	// ChangePatch reports a failure delivering the patch.applied event.
	ChangePatch ChangeOp = "patch"
)

// ChangeLogEvent describes one field write for logging. Values are never
// included.
type ChangeLogEvent struct {
	Op    ChangeOp
	Field fields.Name
	// Backings lists the representations that accepted the write.
	Backings []fields.Backing
	Label    string
	// Err is set when the field is unknown or an activity hook failed.
	Err error
}

// ChangeLogger records field writes.
type ChangeLogger interface {
	LogChange(ChangeLogEvent)
}

// ChangeLoggerFunc adapts a function to ChangeLogger.
type ChangeLoggerFunc func(ChangeLogEvent)

// LogChange implements ChangeLogger.
func (f ChangeLoggerFunc) LogChange(event ChangeLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopChangeLogger struct{}

func (noopChangeLogger) LogChange(ChangeLogEvent) {}

// WithChangeLogger attaches a change logger to the user data.
func WithChangeLogger(logger ChangeLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.changeLogger = noopChangeLogger{}
			return
		}
		cfg.changeLogger = logger
	}
}
