package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/extremtechniker/gokey/model"
)

// CookieStore keeps the whole session in the cookie. Delete cannot revoke a
// copy the client still holds; it stays valid until it expires.
type CookieStore struct{}

func (CookieStore) Save(_ context.Context, s *model.Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (CookieStore) Load(_ context.Context, ref string) (*model.Session, error) {
	b, err := base64.RawURLEncoding.DecodeString(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return &s, nil
}

func (CookieStore) Delete(context.Context, string) error {
	return nil
}
