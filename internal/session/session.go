// Package session holds the identity of the authenticated actor and the
// capability checks operations run before touching storage.
package session

import (
	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/khrees2412/hireboard/pkg/models"
)

// Identity is the actor established by a successful login
type Identity struct {
	UserID      int64
	Name        string
	Email       string
	Role        models.Role
	CompanyName string // employers only
}

// Session is owned by one caller; it is not safe for concurrent use.
type Session struct {
	current *Identity
}

// New returns an empty session
func New() *Session {
	return &Session{}
}

// Establish replaces the current identity
func (s *Session) Establish(id Identity) {
	s.current = &id
}

// Clear drops the identity (logout or account deletion)
func (s *Session) Clear() {
	s.current = nil
}

// Current returns the identity, if any
func (s *Session) Current() (Identity, bool) {
	if s == nil || s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Active reports whether someone is logged in
func (s *Session) Active() bool {
	_, ok := s.Current()
	return ok
}

// RequireActive returns the identity or an UnauthorizedError
func (s *Session) RequireActive() (Identity, error) {
	id, ok := s.Current()
	if !ok {
		return Identity{}, &apperr.UnauthorizedError{}
	}
	return id, nil
}

// RequireRole returns the identity when it has the given role
func (s *Session) RequireRole(role models.Role) (Identity, error) {
	id, ok := s.Current()
	if !ok || id.Role != role {
		return Identity{}, &apperr.UnauthorizedError{RequiredRole: string(role)}
	}
	return id, nil
}

// RequireOwnership checks that the resource owner is the logged in user
func (s *Session) RequireOwnership(ownerID int64) error {
	id, err := s.RequireActive()
	if err != nil {
		return err
	}
	if id.UserID != ownerID {
		return apperr.ErrNotOwner
	}
	return nil
}
