// Package session issues signed session cookies on top of a pluggable Store.
//
// The cookie carries a store reference signed with a key derived from the
// process secret key. Server-side stores use the session ID as reference;
// CookieStore uses the encoded session itself.
package session

import (
	"context"
	"errors"

	"github.com/extremtechniker/gokey/model"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

type Store interface {
	// Save persists s and returns the reference to put in the cookie.
	Save(ctx context.Context, s *model.Session) (string, error)
	Load(ctx context.Context, ref string) (*model.Session, error)
	Delete(ctx context.Context, ref string) error
}
