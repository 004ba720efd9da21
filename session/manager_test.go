package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/extremtechniker/gokey/signing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("session-test-key-session-test-key")

func TestManager_CookieRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(CookieStore{}, testKey, time.Hour)

	sess, cookie, err := m.Create(ctx, "alice", map[string]string{"lang": "en"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, time.Hour, sess.ExpiresAt.Sub(sess.CreatedAt))

	got, err := m.Get(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "alice", got.Subject)
	assert.Equal(t, "en", got.Data["lang"])
}

func TestManager_TamperedCookie(t *testing.T) {
	ctx := context.Background()
	m := NewManager(CookieStore{}, testKey, time.Hour)

	_, cookie, err := m.Create(ctx, "alice", nil)
	require.NoError(t, err)

	_, err = m.Get(ctx, "x"+cookie)
	assert.ErrorIs(t, err, signing.ErrBadSignature)

	_, err = NewManager(CookieStore{}, []byte("other key"), time.Hour).Get(ctx, cookie)
	assert.ErrorIs(t, err, signing.ErrBadSignature)
}

func TestManager_Expired(t *testing.T) {
	ctx := context.Background()
	m := NewManager(CookieStore{}, testKey, time.Hour)

	_, cookie, err := m.Create(ctx, "alice", nil)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Get(ctx, cookie)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewManager(CookieStore{}, testKey, 0).TTL())
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	m := NewManager(CookieStore{}, testKey, time.Hour)

	_, cookie, err := m.Create(ctx, "alice", nil)
	require.NoError(t, err)
	assert.NoError(t, m.Destroy(ctx, cookie))
	assert.ErrorIs(t, m.Destroy(ctx, "garbage"), signing.ErrBadSignature)
}

func TestCookieStore_LoadGarbage(t *testing.T) {
	_, err := CookieStore{}.Load(context.Background(), "!!!")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = CookieStore{}.Load(context.Background(), strings.Repeat("A", 8))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_PeekIgnoresAge(t *testing.T) {
	ctx := context.Background()
	m := NewManager(CookieStore{}, testKey, time.Hour)

	sess, cookie, err := m.Create(ctx, "alice", nil)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	got, err := m.Peek(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "alice", got.Subject)

	_, err = m.Peek(ctx, "garbage")
	assert.ErrorIs(t, err, signing.ErrBadSignature)
}
