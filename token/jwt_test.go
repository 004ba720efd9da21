package token

import (
	"testing"
	"time"

	"github.com/extremtechniker/gokey/secret"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-signing-key-test-signing-key")

func TestIssueParse(t *testing.T) {
	s, err := Issue(key, "gokey-api", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(key, s)
	require.NoError(t, err)
	assert.Equal(t, "gokey-api", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssue_DefaultTTL(t *testing.T) {
	s, err := Issue(key, "x", 0)
	require.NoError(t, err)

	claims, err := Parse(key, s)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_WrongKey(t *testing.T) {
	s, err := Issue(key, "x", time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("another-key"), s)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "x",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	_, err = Parse(key, s)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "x",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(key)
	require.NoError(t, err)

	_, err = Parse(key, s)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Parse(key, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSigningKey(t *testing.T) {
	k := secret.Key{Value: "process-key"}
	assert.Len(t, SigningKey(k), 32)
	assert.Equal(t, SigningKey(k), SigningKey(k))
	assert.NotEqual(t, []byte(k.Value), SigningKey(k))
}
