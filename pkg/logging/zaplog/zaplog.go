// Package zaplog adapts the user data change and rule evaluation loggers to
// a zap.Logger.
package zaplog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	adsignal "github.com/goliatone/go-adsignal"
	"github.com/goliatone/go-adsignal/internal/pii"
)

// Logger writes change and evaluation events as structured zap entries.
// Successful writes log at the configured level, failures at warn.
type Logger struct {
	log   *zap.Logger
	level zapcore.Level
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the level used for successful events. Defaults to debug.
func WithLevel(level zapcore.Level) Option {
	return func(l *Logger) {
		l.level = level
	}
}

// New wraps log. A nil log discards every event.
func New(log *zap.Logger, opts ...Option) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Logger{log: log, level: zapcore.DebugLevel}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Options returns the adsignal options installing l as both loggers.
func (l *Logger) Options() []adsignal.Option {
	return []adsignal.Option{
		adsignal.WithChangeLogger(l),
		adsignal.WithEvaluatorLogger(l),
	}
}

// LogChange implements adsignal.ChangeLogger.
func (l *Logger) LogChange(event adsignal.ChangeLogEvent) {
	backings := make([]string, len(event.Backings))
	for i, b := range event.Backings {
		backings[i] = string(b)
	}
	fields := []zap.Field{
		zap.String("op", string(event.Op)),
		zap.Strings("backings", backings),
	}
	if event.Field != "" {
		fields = append(fields, zap.String("field", event.Field.String()))
	}
	if event.Label != "" {
		fields = append(fields, zap.String("label", event.Label))
	}
	l.write("user data change", event.Err, fields)
}

// LogEvaluation implements adsignal.EvaluatorLogger. Rules may embed
// literal identifiers, so the expression text is only written when the
// logger has debug enabled. Other levels get its SHA-256 digest.
func (l *Logger) LogEvaluation(event adsignal.EvaluatorLogEvent) {
	expr := zap.String("expr_sha256", pii.Hash(event.Expr))
	if l.log.Core().Enabled(zapcore.DebugLevel) {
		expr = zap.String("expr", event.Expr)
	}
	fields := []zap.Field{
		zap.String("engine", event.Engine),
		expr,
		zap.Int("present", event.Present),
		zap.Duration("duration", event.Duration),
	}
	if event.Label != "" {
		fields = append(fields, zap.String("label", event.Label))
	}
	if event.ResultType != "" {
		fields = append(fields, zap.String("result_type", event.ResultType))
	}
	l.write("rule evaluated", event.Err, fields)
}

func (l *Logger) write(msg string, err error, fields []zap.Field) {
	if err != nil {
		l.log.Warn(msg, append(fields, zap.Error(err))...)
		return
	}
	if ce := l.log.Check(l.level, msg); ce != nil {
		ce.Write(fields...)
	}
}
