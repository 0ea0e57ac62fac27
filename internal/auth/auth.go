// Package auth is the credential-verification collaborator. The core only
// depends on the Authenticator interface; whether credentials are checked
// against the bundled demo directory or a real identity provider is a wiring
// decision.
package auth

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/coaching-service/internal/models"
)

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords. The two cases are intentionally indistinguishable to the caller
// so login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Authenticator interface {
	// Login verifies the credentials and returns the identity they belong
	// to, or ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*models.User, error)
}
