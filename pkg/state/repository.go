package state

import (
	"context"
	"fmt"
	"sync"

	adsignal "github.com/goliatone/go-adsignal"
)

// Mutator edits a rebuilt record in place.
type Mutator func(*adsignal.UserData) error

// Repository persists user data records through a Store. The zero value is not
// usable; build one with NewRepository.
type Repository struct {
	store   Store[adsignal.Params]
	options []adsignal.Option

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRepository wraps store. opts are applied to every record handed out.
// Change loggers and activity hooks see a Mutate only once it is saved;
// loading a stored record reports nothing.
func NewRepository(store Store[adsignal.Params], opts ...adsignal.Option) *Repository {
	return &Repository{store: store, options: opts, locks: map[string]*sync.Mutex{}}
}

// Load rebuilds the record stored under ref.
func (r *Repository) Load(ctx context.Context, ref Ref) (*adsignal.UserData, Meta, error) {
	if err := r.check(); err != nil {
		return nil, Meta{}, err
	}
	params, meta, ok, err := r.store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %s: %w", ref, err)
	}
	if !ok {
		return nil, Meta{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return r.build(ref, params, adsignal.WithRestored()), meta, nil
}

// LoadWithDefaults rebuilds the record under ref with every unset field taken
// from defaults. A missing record yields defaults alone.
func (r *Repository) LoadWithDefaults(ctx context.Context, ref Ref, defaults adsignal.Params) (*adsignal.UserData, Meta, error) {
	if err := r.check(); err != nil {
		return nil, Meta{}, err
	}
	params, meta, ok, err := r.store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %s: %w", ref, err)
	}
	if !ok {
		params, meta = adsignal.Params{}, Meta{}
	}
	return r.build(ref, adsignal.ApplyDefaults(params, defaults), adsignal.WithRestored()), meta, nil
}

// Mutate loads the record under ref (an empty one when missing), applies fn,
// validates the result and saves it. A non-empty meta.ETag must match the
// stored ETag. Nothing is saved or reported when fn or validation fails.
//
// fn edits a scratch copy with no observers attached. After the save the
// net change is replayed as a patch on the returned record, so hooks see
// field events and one patch event per saved Mutate, preceded by
// userdata.created when the record is new.
func (r *Repository) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (*adsignal.UserData, Meta, error) {
	if err := r.check(); err != nil {
		return nil, Meta{}, err
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("state: mutator is required")
	}
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, err
	}

	lock := r.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	params, loadedMeta, ok, err := r.store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %s: %w", ref, err)
	}
	if !ok {
		params, loadedMeta = adsignal.Params{}, Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	scratch := r.build(ref, params, adsignal.WithRestored(), adsignal.WithoutObservers())
	before := scratch.Snapshot()
	if err := fn(scratch); err != nil {
		return nil, loadedMeta, err
	}
	if err := scratch.Validate(); err != nil {
		return nil, loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	savedMeta, err := r.store.Save(ctx, ref, scratch.Params(), saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("state: save %s: %w", ref, err)
	}

	var extra []adsignal.Option
	if ok {
		extra = append(extra, adsignal.WithRestored())
	}
	u := r.build(ref, params, extra...)
	u.ApplyPatch(adsignal.Diff(before, scratch.Snapshot()))
	return u, savedMeta, nil
}

// Patch is Mutate applying patch.
func (r *Repository) Patch(ctx context.Context, ref Ref, meta Meta, patch adsignal.Patch) (*adsignal.UserData, Meta, error) {
	return r.Mutate(ctx, ref, meta, func(u *adsignal.UserData) error {
		u.ApplyPatch(patch)
		return nil
	})
}

func (r *Repository) check() error {
	if r == nil || r.store == nil {
		return fmt.Errorf("state: store is required")
	}
	return nil
}

// build applies extra after the repository options so it can override them.
func (r *Repository) build(ref Ref, params adsignal.Params, extra ...adsignal.Option) *adsignal.UserData {
	opts := make([]adsignal.Option, 0, len(r.options)+len(extra)+1)
	opts = append(opts, adsignal.WithLabel(ref.String()))
	opts = append(opts, r.options...)
	opts = append(opts, extra...)
	return adsignal.New(params, opts...)
}

func (r *Repository) lockFor(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}
