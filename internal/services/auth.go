package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/members-only/clubhouse/internal/store"
	"github.com/members-only/clubhouse/types"
	"golang.org/x/crypto/bcrypt"
)

// SessionRepository defines persistence operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session types.Session) error
	GetBySID(ctx context.Context, sid string) (types.Session, error)
	Delete(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuthService verifies credentials and manages the session lifecycle.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	ttl      time.Duration
}

func NewAuthService(users UserRepository, sessions SessionRepository, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Verify checks a username/password pair against the stored hash and returns
// the full user record on success. An unknown username and a wrong password
// both come back as ErrInvalidCredentials.
func (s *AuthService) Verify(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Login opens a session for a verified user and returns it. The SID is an
// opaque random token carried thereafter in the client's cookie.
func (s *AuthService) Login(ctx context.Context, user types.User) (types.Session, error) {
	session := types.Session{
		SID:    uuid.NewString(),
		UserID: user.ID,
		Expire: time.Now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return types.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Logout invalidates a session. Requests bearing the same SID afterwards are
// anonymous.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PrincipalFromSession resolves a SID to a fresh user record. A missing or
// expired session, or a user that no longer exists, yields a nil principal
// rather than an error; only store failures are reported.
func (s *AuthService) PrincipalFromSession(ctx context.Context, sid string) (*types.User, error) {
	session, err := s.sessions.GetBySID(ctx, sid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("look up session: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	return &user, nil
}

// PruneExpired removes expired sessions from the store.
func (s *AuthService) PruneExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}
