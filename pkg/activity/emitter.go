package activity

import (
	"context"
	"strings"
	"time"
)

// DefaultChannel is applied to events emitted without a channel.
const DefaultChannel = "userdata"

// Config holds emitter defaults.
type Config struct {
	Enabled bool
	// Channel defaults to DefaultChannel.
	Channel string
	// DefinitionCode is applied to events that carry none.
	DefinitionCode string
	// Clock stamps OccurredAt. Defaults to time.Now.
	Clock func() time.Time
}

// Emitter applies Config defaults and forwards events to Hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter drops nil hooks and fills in Config defaults. An emitter with
// no hooks left is disabled regardless of cfg.Enabled.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	var kept Hooks
	for _, hook := range hooks {
		if hook != nil {
			kept = append(kept, hook)
		}
	}
	cfg.Channel = strings.TrimSpace(cfg.Channel)
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	cfg.DefinitionCode = strings.TrimSpace(cfg.DefinitionCode)
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	cfg.Enabled = cfg.Enabled && len(kept) > 0
	return &Emitter{hooks: kept, cfg: cfg}
}

// Enabled reports whether Emit reaches any hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled
}

// Emit fills in channel, definition code and timestamp, then notifies the hooks.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.cfg.Channel
	}
	if strings.TrimSpace(event.DefinitionCode) == "" {
		event.DefinitionCode = e.cfg.DefinitionCode
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.cfg.Clock().UTC()
	}
	return e.hooks.Notify(ctx, event)
}
