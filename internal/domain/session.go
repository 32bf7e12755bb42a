package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the signed-in company's credential. The token is issued by the
// API and passed back to it unmodified.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CompanyID int64     `json:"company_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Authenticated reports whether the session carries an API credential.
// A nil session is anonymous.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// SessionStore persists sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
