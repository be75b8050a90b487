// Package session holds the signed-in console user between requests.
//
// A Session is created at sign-in and ended at sign-out or when the remote
// API rejects its token. It is resolved once per request by middleware and
// then passed explicitly to the services that need the caller.
package session

import (
	"errors"
	"sync/atomic"
	"time"

	"backoffice-console/internal/role"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid session token")
)

// User is the console user as returned by the remote API at sign-in.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_Name"`
	LastName  string    `json:"last_Name"`
	Email     string    `json:"email"`
	Role      role.Role `json:"role"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	ended atomic.Bool
}

// Can reports whether the session user holds c.
func (s *Session) Can(c role.Capability) bool {
	return role.Can(s.User.Role, c)
}

func (s *Session) IsAdmin() bool {
	return s.User.Role == role.Admin
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Ended reports whether the session was torn down while a request held it.
func (s *Session) Ended() bool {
	return s.ended.Load()
}

func (s *Session) markEnded() {
	s.ended.Store(true)
}
