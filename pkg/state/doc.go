// Package state persists user data records and serializes their updates.
//
// A Store loads and saves one snapshot per Ref and knows nothing about user
// data semantics. Repository builds on a Store: it rebuilds the facade from a
// stored snapshot, applies a caller mutation, validates the result and saves
// the resolved values back, holding a per-record lock for the whole
// read-modify-write so concurrent writers to the same record never interleave.
//
// Data flow:
//
//	Store.Load -> adsignal.New(params) -> mutate -> Validate -> Store.Save(u.Params())
//
// Optimistic concurrency:
//
//	Meta.ETag is compared on Mutate when the caller supplies one, and again by
//	MemoryStore on Save. A stale ETag fails with ErrETagMismatch.
//
// Keys:
//
//	Ref.Identifier() renders `[tenant/<tenant>/]<domain>/<subject>`, where the
//	domain is the pixel or page the record is sent to and the subject is the
//	advertiser's own key for the person (external id, lead id).
package state
