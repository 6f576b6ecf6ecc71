package state_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-adsignal/pkg/state"
)

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name string
		ref  state.Ref
		want string
		err  string
	}{
		{name: "domain and subject", ref: state.Ref{Domain: "pixel-1", Subject: "lead-9"}, want: "pixel-1/lead-9"},
		{name: "tenant prefix", ref: state.Ref{Tenant: "acme", Domain: "pixel-1", Subject: "lead-9"}, want: "tenant/acme/pixel-1/lead-9"},
		{name: "missing domain", ref: state.Ref{Subject: "lead-9"}, err: "state: invalid ref: missing domain"},
		{name: "missing subject", ref: state.Ref{Domain: "pixel-1"}, err: "state: invalid ref: missing subject"},
		{name: "separator in subject", ref: state.Ref{Domain: "pixel-1", Subject: "a/b"}, err: `state: invalid ref: subject "a/b" contains '/'`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.err != "" {
				require.EqualError(t, err, tc.err)
				require.ErrorIs(t, err, state.ErrInvalidRef)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore[map[string]string]()
	ref := state.Ref{Domain: "pixel-1", Subject: "lead-9"}

	_, _, ok, err := store.Load(ctx, ref)
	require.NoError(t, err)
	require.False(t, ok)

	extra := map[string]string{"source": "crm"}
	saved, err := store.Save(ctx, ref, map[string]string{"email": "a@x.com"}, state.Meta{Extra: extra})
	require.NoError(t, err)
	_, err = uuid.Parse(saved.SnapshotID)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ETag)
	require.False(t, saved.UpdatedAt.IsZero())

	extra["source"] = "mutated"

	snapshot, meta, ok, err := store.Load(ctx, ref)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "a@x.com", snapshot["email"])
	require.Equal(t, saved.ETag, meta.ETag)
	require.Equal(t, "crm", meta.Extra["source"])
	require.Equal(t, 1, store.Len())
}

func TestMemoryStoreRejectsStaleETag(t *testing.T) {
	ctx := context.Background()
	store := state.NewMemoryStore[string]()
	ref := state.Ref{Domain: "pixel-1", Subject: "lead-9"}

	first, err := store.Save(ctx, ref, "v1", state.Meta{})
	require.NoError(t, err)
	second, err := store.Save(ctx, ref, "v2", first)
	require.NoError(t, err)
	require.NotEqual(t, first.ETag, second.ETag)
	require.NotEqual(t, first.SnapshotID, second.SnapshotID)

	_, err = store.Save(ctx, ref, "v3", first)
	require.ErrorIs(t, err, state.ErrETagMismatch)

	snapshot, _, _, err := store.Load(ctx, ref)
	require.NoError(t, err)
	require.Equal(t, "v2", snapshot)
}

func TestMemoryStoreInvalidRef(t *testing.T) {
	store := state.NewMemoryStore[string]()
	_, err := store.Save(context.Background(), state.Ref{Domain: "pixel-1"}, "v1", state.Meta{})
	require.ErrorIs(t, err, state.ErrInvalidRef)
}
