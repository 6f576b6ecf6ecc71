package adsignal

import (
	"time"

	"github.com/goliatone/go-adsignal/businessdata"
	"github.com/goliatone/go-adsignal/pkg/activity"
	"github.com/goliatone/go-adsignal/serverside"
)

// UserData is a single read/write surface over the two backing user data
// representations: the conversions (server) payload and the business-data
// payload. It holds no field state of its own.
//
// Writes fan out to every backing that declares the field; reads resolve the
// server value first and fall back to the business-data value. A UserData is
// not safe for concurrent mutation; use one instance per event or request, or
// serialize writes externally (see pkg/state).
type UserData struct {
	business *businessdata.UserData
	server   *serverside.UserData

	cfg config
}

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents OpenAPI-compatible JSON Schema documents.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator describes a user data record. Implementations MUST be safe
// for concurrent use and handle a nil record by describing the registry only.
type SchemaGenerator interface {
	Generate(u *UserData) (SchemaDocument, error)
}

// Response stores a typed result produced by an evaluator.
type Response[T any] struct {
	Value T
}

// RuleContext carries inputs needed when evaluating an expression against a
// user data record.
type RuleContext struct {
	// Values maps every registry field name to its resolved value, nil when absent.
	Values map[string]any
	// Sources maps present field names to the backing that supplied the value.
	Sources  map[string]string
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Label    string
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Values == nil {
		ctx.Values = map[string]any{}
	}
	if ctx.Sources == nil {
		ctx.Sources = map[string]string{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) label() string {
	if ctx.Label != "" {
		return ctx.Label
	}
	return "unknown"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompiledRuleFunc adapts a function to CompiledRule.
type CompiledRuleFunc func(ctx RuleContext) (any, error)

// Evaluate implements CompiledRule.
func (f CompiledRuleFunc) Evaluate(ctx RuleContext) (any, error) {
	return f(ctx)
}

// CompileOption adjusts a rule at compile time.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct {
	expectBool bool
}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// ExpectBool makes a compiled rule fail with ErrNonBooleanRule whenever a
// run yields anything other than a bool.
func ExpectBool() CompileOption {
	return compileOptionFunc(func(cfg *compileConfig) {
		cfg.expectBool = true
	})
}

func applyCompileOptions(opts []CompileOption) compileConfig {
	var cfg compileConfig
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompileOption(&cfg)
		}
	}
	return cfg
}

// Option configures a UserData.
type Option func(*config)

type config struct {
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evaluatorLogger EvaluatorLogger
	changeLogger    ChangeLogger
	schemaGenerator SchemaGenerator
	emitter         *activity.Emitter
	subject         activity.Subject
	label           string
	// restored records were rebuilt from storage and skip the created event.
	restored bool
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (u *UserData) evaluator() Evaluator {
	return u.cfg.evaluator
}

func (u *UserData) withEvaluator(e Evaluator) {
	u.cfg.evaluator = e
}

func (u *UserData) programCache() ProgramCache {
	return u.cfg.programCache
}

func (u *UserData) functionRegistry() *FunctionRegistry {
	return u.cfg.functions
}

func (u *UserData) evaluatorLogger() EvaluatorLogger {
	if u.cfg.evaluatorLogger != nil {
		return u.cfg.evaluatorLogger
	}
	return noopEvaluatorLogger{}
}

func (u *UserData) changeLogger() ChangeLogger {
	if u.cfg.changeLogger != nil {
		return u.cfg.changeLogger
	}
	return noopChangeLogger{}
}

func (u *UserData) schemaGenerator() SchemaGenerator {
	if u == nil || u.cfg.schemaGenerator == nil {
		return DefaultSchemaGenerator()
	}
	return u.cfg.schemaGenerator
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *config) {
		cfg.schemaGenerator = generator
	}
}

// WithLabel names the record in rule contexts, logs and activity events,
// e.g. the event ID the user data is attached to.
func WithLabel(label string) Option {
	return func(cfg *config) {
		cfg.label = label
	}
}
