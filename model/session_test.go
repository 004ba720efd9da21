package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpiry(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, s.Expired(now))
	assert.Equal(t, time.Minute, s.TTL(now))

	assert.True(t, s.Expired(now.Add(time.Minute)))
	assert.Equal(t, time.Duration(0), s.TTL(now.Add(time.Hour)))

	assert.False(t, (&Session{}).Expired(now))
}
