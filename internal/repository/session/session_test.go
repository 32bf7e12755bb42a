package session

import (
	"context"
	"testing"
	"time"

	"go-jobboard-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("test-secret", time.Hour)
	codec.now = func() time.Time { return now }

	token, err := codec.Encode("3f1b2c9e-sess")
	require.NoError(t, err)

	t.Run("Round trip", func(t *testing.T) {
		id, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "3f1b2c9e-sess", id)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenCodec("another-secret", time.Hour)
		other.now = codec.now
		_, err := other.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewTokenCodec("test-secret", time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Tampered", func(t *testing.T) {
		_, err := codec.Decode(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
		_, err = codec.Decode("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	assert.Equal(t, time.Hour, codec.TTL())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	live := &domain.Session{ID: "live", Token: "tok", CompanyID: 4, ExpiresAt: now.Add(time.Hour)}
	stale := &domain.Session{ID: "stale", Token: "old", CompanyID: 4, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, store.Save(ctx, live))
	require.NoError(t, store.Save(ctx, stale))

	t.Run("Get returns a copy of the saved session", func(t *testing.T) {
		got, err := store.Get(ctx, "live")
		require.NoError(t, err)
		assert.Equal(t, *live, *got)

		got.Token = "mutated"
		again, err := store.Get(ctx, "live")
		require.NoError(t, err)
		assert.Equal(t, "tok", again.Token)
	})

	t.Run("Expired sessions are not returned", func(t *testing.T) {
		_, err := store.Get(ctx, "stale")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "live"))
		_, err := store.Get(ctx, "live")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &domain.Session{ID: "a", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "b", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "c", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Session{ID: "d"}))

	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 0, store.Sweep())

	_, err := store.Get(ctx, "c")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "d")
	assert.NoError(t, err, "sessions without expiry are kept")
}
