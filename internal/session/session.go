// Package session keeps the small per-client state bag (applicant email and
// admin flag) behind a signed cookie token.
package session

import (
	"context"
	"time"
)

// Session is the state carried across one client's requests.
type Session struct {
	ID    string `json:"-"`
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin"`
}

// Store persists sessions by id. Load returns an error satisfying
// errors.Is(err, errors.NotFound) for unknown or expired ids. Deleting an
// unknown id is not an error.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by Manager.Middleware. Requests
// that did not pass through the middleware get an empty, unsaved session.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(contextKey{}).(*Session); ok {
		return s
	}
	return &Session{}
}
