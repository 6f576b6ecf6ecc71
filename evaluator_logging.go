package adsignal

import "time"

// EvaluatorLogEvent describes one rule run. Rule results are summarized by
// type so that a rule returning a raw field cannot leak it into logs.
type EvaluatorLogEvent struct {
	Engine string
	Expr   string
	Label  string
	// Present counts the fields that held a value when the rule ran.
	Present    int
	ResultType string
	Duration   time.Duration
	Err        error
}

// EvaluatorLogger records rule runs.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// WithEvaluatorLogger attaches an evaluator logger. nil restores the no-op
// logger.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *config) {
		cfg.evaluatorLogger = logger
		if logger == nil {
			cfg.evaluatorLogger = noopEvaluatorLogger{}
		}
	}
}

func resultType(value any, err error) string {
	switch {
	case err != nil:
		return ""
	case value == nil:
		return "nil"
	}
	switch value.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case int, int64, float64, uint64:
		return "number"
	case []any, []string:
		return "list"
	case map[string]any:
		return "map"
	default:
		return "other"
	}
}
