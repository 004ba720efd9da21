package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/extremtechniker/gokey/model"
	"github.com/extremtechniker/gokey/secret"
	"github.com/extremtechniker/gokey/signing"
	"github.com/google/uuid"
)

const (
	CookieName = "gokey_session"
	DefaultTTL = 14 * 24 * time.Hour
	signerSalt = "session"
)

type Manager struct {
	store  Store
	signer *signing.TimestampSigner
	ttl    time.Duration
	now    func() time.Time
}

// NewManager signs cookies with key. A non-positive ttl means DefaultTTL.
func NewManager(store Store, key []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		signer: signing.NewTimestampSigner(key, signerSalt),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a new session for subject and returns it with its cookie value.
func (m *Manager) Create(ctx context.Context, subject string, data map[string]string) (*model.Session, string, error) {
	now := m.now().UTC()
	s := &model.Session{
		ID:        uuid.NewString(),
		Subject:   subject,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	ref, err := m.store.Save(ctx, s)
	if err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}
	cookie, err := m.signer.Sign(ref)
	if err != nil {
		return nil, "", err
	}
	return s, cookie, nil
}

func (m *Manager) Get(ctx context.Context, cookie string) (*model.Session, error) {
	ref, err := m.signer.Unsign(cookie, m.ttl)
	if err != nil {
		if errors.Is(err, signing.ErrSignatureExpired) {
			return nil, ErrExpired
		}
		return nil, err
	}
	s, err := m.store.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// Peek loads the session behind cookie without checking its age, so callers
// can inspect a stale session before destroying it.
func (m *Manager) Peek(ctx context.Context, cookie string) (*model.Session, error) {
	ref, err := m.signer.Unsign(cookie, 0)
	if err != nil {
		return nil, err
	}
	return m.store.Load(ctx, ref)
}

// Destroy removes the session behind cookie. Age is not checked so stale
// sessions can still be cleaned up.
func (m *Manager) Destroy(ctx context.Context, cookie string) error {
	ref, err := m.signer.Unsign(cookie, 0)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, ref)
}

// SigningKey derives the cookie signing key from the process secret key.
func SigningKey(k secret.Key) []byte {
	return k.Derive("signing", 32)
}
