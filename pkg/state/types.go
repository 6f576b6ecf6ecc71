package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrETagMismatch = errors.New("state: etag mismatch")
	ErrNotFound     = errors.New("state: record not found")
	ErrInvalidRef   = errors.New("state: invalid ref")
)

// Ref identifies one persisted user data record.
type Ref struct {
	Tenant  string `json:"tenant,omitempty"`
	Domain  string `json:"domain"`
	Subject string `json:"subject"`
}

// Meta is storage-owned metadata used for trace/audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single record reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Identifier renders the canonical storage key for r.
func (r Ref) Identifier() (string, error) {
	parts := []struct {
		name, value string
		required    bool
	}{
		{"tenant", r.Tenant, false},
		{"domain", r.Domain, true},
		{"subject", r.Subject, true},
	}
	for _, part := range parts {
		if part.required && part.value == "" {
			return "", fmt.Errorf("%w: missing %s", ErrInvalidRef, part.name)
		}
		if strings.Contains(part.value, "/") {
			return "", fmt.Errorf("%w: %s %q contains '/'", ErrInvalidRef, part.name, part.value)
		}
	}
	if r.Tenant == "" {
		return fmt.Sprintf("%s/%s", r.Domain, r.Subject), nil
	}
	return fmt.Sprintf("tenant/%s/%s/%s", r.Tenant, r.Domain, r.Subject), nil
}

func (r Ref) String() string {
	id, err := r.Identifier()
	if err != nil {
		return fmt.Sprintf("%s/%s", r.Domain, r.Subject)
	}
	return id
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
