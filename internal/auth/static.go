package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// Credential pairs an identity with its demo password.
type Credential struct {
	User     models.User
	Password string
}

// StaticAuthenticator verifies credentials against an in-memory directory.
// It stands in for an external identity provider during development and
// demos; it is not a credential store and performs no hashing.
type StaticAuthenticator struct {
	mu    sync.RWMutex
	users map[string]Credential // keyed by lowercased email
}

func NewStaticAuthenticator(creds []Credential) *StaticAuthenticator {
	users := make(map[string]Credential, len(creds))
	for _, c := range creds {
		users[strings.ToLower(c.User.Email)] = c
	}
	return &StaticAuthenticator{users: users}
}

func (a *StaticAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	cred, ok := a.users[strings.ToLower(strings.TrimSpace(email))]
	a.mu.RUnlock()

	if !ok || cred.Password == "" || cred.Password != password {
		return nil, ErrInvalidCredentials
	}

	user := cred.User
	return &user, nil
}
