// Package session owns the authenticated identity and its token lifecycle.
// State survives a restart by rehydrating from durable client storage; every
// failure mode on the read path (absent keys, corrupt JSON, expired token)
// degrades to "no session" instead of surfacing an error to the caller.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/storage"
)

// Storage keys. The identity and the token metadata are persisted as two
// separate JSON documents.
const (
	identityKey = "current_identity"
	tokenKey    = "session_token"
)

type Store struct {
	storage storage.Store
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source. Tests use this to pin expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(st storage.Store, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start issues a new session for the identity and persists it, overwriting
// any previous session.
func (s *Store) Start(ctx context.Context, identity models.User, ttl time.Duration) (*models.Session, error) {
	if !identity.Role.Valid() {
		return nil, fmt.Errorf("cannot start session for unknown role %q", identity.Role)
	}

	now := s.now()
	sess := &models.Session{
		Identity: identity,
		Token: models.SessionToken{
			AccessToken:  newOpaqueToken("at"),
			RefreshToken: newOpaqueToken("rt"),
			ExpiresAt:    now.Add(ttl).UnixMilli(),
		},
		IssuedAt: now,
	}

	identityDoc, err := json.Marshal(sess.Identity)
	if err != nil {
		return nil, fmt.Errorf("marshal identity: %w", err)
	}
	tokenDoc, err := json.Marshal(sess.Token)
	if err != nil {
		return nil, fmt.Errorf("marshal token: %w", err)
	}

	if err := s.storage.Set(ctx, identityKey, identityDoc); err != nil {
		return nil, fmt.Errorf("persist identity: %w", err)
	}
	if err := s.storage.Set(ctx, tokenKey, tokenDoc); err != nil {
		// Roll back the identity write so a half-session is never restorable
		_ = s.storage.Delete(ctx, identityKey)
		return nil, fmt.Errorf("persist token: %w", err)
	}

	return sess, nil
}

// Restore rehydrates the session from storage. It returns (nil, nil) when no
// valid session exists: absent keys, unparsable documents and expired tokens
// are all treated as "not logged in", and stale state is cleared.
func (s *Store) Restore(ctx context.Context) (*models.Session, error) {
	identityDoc, err := s.storage.Get(ctx, identityKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("session storage unreadable, treating as logged out", "error", err)
		}
		return nil, nil
	}

	var identity models.User
	if err := json.Unmarshal(identityDoc, &identity); err != nil {
		s.logger.Warn("stored identity corrupt, clearing session", "error", err)
		_ = s.End(ctx)
		return nil, nil
	}
	if !identity.Role.Valid() {
		s.logger.Warn("stored identity has unknown role, clearing session", "role", identity.Role)
		_ = s.End(ctx)
		return nil, nil
	}

	tokenDoc, err := s.storage.Get(ctx, tokenKey)
	if err != nil {
		// Identity without a token is a partial write; clear it
		_ = s.End(ctx)
		return nil, nil
	}

	var token models.SessionToken
	if err := json.Unmarshal(tokenDoc, &token); err != nil {
		s.logger.Warn("stored token corrupt, clearing session", "error", err)
		_ = s.End(ctx)
		return nil, nil
	}

	sess := &models.Session{Identity: identity, Token: token}
	if sess.Expired(s.now()) {
		_ = s.End(ctx)
		return nil, nil
	}

	return sess, nil
}

// End clears all persisted session state. Idempotent: ending an already
// ended session succeeds.
func (s *Store) End(ctx context.Context) error {
	var errs []error
	if err := s.storage.Delete(ctx, identityKey); err != nil {
		errs = append(errs, fmt.Errorf("clear identity: %w", err))
	}
	if err := s.storage.Delete(ctx, tokenKey); err != nil {
		errs = append(errs, fmt.Errorf("clear token: %w", err))
	}
	return errors.Join(errs...)
}

// Expired checks the session against the store's clock.
func (s *Store) Expired(sess *models.Session) bool {
	if sess == nil {
		return true
	}
	return sess.Expired(s.now())
}

func newOpaqueToken(kind string) string {
	return fmt.Sprintf("%s_%s", kind, uuid.NewString())
}
