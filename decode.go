package adsignal

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/hydrate"
)

var (
	// ErrUnsupportedValue reports a payload value that cannot be read as a
	// field string.
	ErrUnsupportedValue = errors.New("adsignal: unsupported payload value")
	// ErrConflictingKeys reports two keys of equal rank naming one field with
	// different values, e.g. "Email" and "email".
	ErrConflictingKeys = errors.New("adsignal: conflicting payload keys")
)

// DecodeOption configures DecodeParams.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict bool
	ctx    hydrate.Context
}

// WithStrictKeys fails decoding when the payload carries a key that is neither
// a canonical field name nor a wire key. By default such keys are dropped.
func WithStrictKeys() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// WithPayloadSource names the payload origin in decoding errors.
func WithPayloadSource(source string) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.ctx.Source = source
	}
}

// DecodeParams reads a loosely typed payload into Params. Keys may be
// canonical names or wire keys in any case. When both forms name one field
// the canonical name wins. Scalars are stringified without loss, so integer
// IDs keep every digit. List values contribute their first element and null
// leaves the field unset.
func DecodeParams(payload map[string]any, opts ...DecodeOption) (Params, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.ctx.Source == "" {
		cfg.ctx.Source = "payload"
	}

	decoder := hydrate.NewDecoder[Params](
		hydrate.WithPreHook[Params](canonicalKeys(cfg.strict)),
		hydrate.WithDisallowUnknownFields[Params](),
	)
	return decoder.Decode(cfg.ctx, payload)
}

// FromPayload decodes payload and builds a validated user data record from it.
func FromPayload(payload map[string]any, opts ...Option) (*UserData, error) {
	params, err := DecodeParams(payload)
	if err != nil {
		return nil, err
	}
	return Load(params, opts...)
}

// keyed is one payload entry resolved to a field.
type keyed struct {
	key    string
	byName bool
	value  string
	ok     bool
}

func canonicalKeys(strict bool) hydrate.PreHook {
	return func(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
		keys := make([]string, 0, len(payload))
		for key := range payload {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		chosen := make(map[fields.Name]keyed, len(keys))
		var errs []error
		for _, key := range keys {
			name, err := fields.Lookup(key)
			if err != nil {
				if strict {
					errs = append(errs, err)
				}
				continue
			}
			value, ok, err := fieldString(payload[key])
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			entry := keyed{
				key:    key,
				byName: strings.ToLower(strings.TrimSpace(key)) == name.String(),
				value:  value,
				ok:     ok,
			}
			prev, seen := chosen[name]
			switch {
			case !seen, entry.byName && !prev.byName:
				chosen[name] = entry
			case entry.byName == prev.byName && (entry.ok != prev.ok || entry.value != prev.value):
				errs = append(errs, fmt.Errorf("%w: %q and %q both set %s", ErrConflictingKeys, prev.key, key, name))
			}
		}
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}

		out := make(map[string]any, len(chosen))
		for name, entry := range chosen {
			if entry.ok {
				out[name.String()] = entry.value
			}
		}
		return out, nil
	}
}

func fieldString(raw any) (string, bool, error) {
	switch v := raw.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case json.Number:
		return v.String(), true, nil
	case int:
		return strconv.Itoa(v), true, nil
	case int32:
		return strconv.FormatInt(int64(v), 10), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true, nil
	case uint64:
		return strconv.FormatUint(v, 10), true, nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case []any:
		if len(v) == 0 {
			return "", false, nil
		}
		return fieldString(v[0])
	case []string:
		if len(v) == 0 {
			return "", false, nil
		}
		return v[0], true, nil
	default:
		return "", false, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}
