// Package navigation owns the view state machine:
//
//	Landing -> RoleSelection -> CredentialEntry(role) -> Dashboard(identity)
//
// Triggers not listed for the current screen are ignored. A second submit
// while a login is in flight is a no-op, and an expired session discovered
// during a check lands back on Landing silently.
package navigation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/auth"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/session"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
	"github.com/SAP-F-2025/coaching-service/internal/validator"
)

type Screen string

const (
	ScreenLanding         Screen = "landing"
	ScreenRoleSelection   Screen = "role_selection"
	ScreenCredentialEntry Screen = "credential_entry"
	ScreenDashboard       Screen = "dashboard"
)

// State is a snapshot of the router. SelectedRole is meaningful on
// CredentialEntry, Identity on Dashboard, LoginError on CredentialEntry
// after a rejected submit.
type State struct {
	Screen       Screen
	SelectedRole models.UserRole
	Identity     *models.User
	LoginError   string
}

type Router struct {
	sessions *session.Store
	authn    auth.Authenticator
	forms    *validator.Validator
	limiter  *auth.RateLimiter
	sink     audit.Sink
	logger   utils.Logger
	ttl      time.Duration

	mu            sync.Mutex
	state         State
	loginInFlight bool
}

type Option func(*Router)

// WithRateLimiter throttles repeated submits per email.
func WithRateLimiter(rl *auth.RateLimiter) Option {
	return func(r *Router) { r.limiter = rl }
}

func NewRouter(sessions *session.Store, authn auth.Authenticator, forms *validator.Validator,
	sink audit.Sink, logger utils.Logger, ttl time.Duration, opts ...Option) *Router {
	r := &Router{
		sessions: sessions,
		authn:    authn,
		forms:    forms,
		sink:     sink,
		logger:   logger,
		ttl:      ttl,
		state:    State{Screen: ScreenLanding},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start performs the cold-start restore: Dashboard when a valid session
// survives in storage, Landing otherwise.
func (r *Router) Start(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.sessions.Restore(ctx)
	if err != nil {
		return r.state, fmt.Errorf("failed to restore session: %w", err)
	}
	if sess != nil {
		r.state = State{Screen: ScreenDashboard, Identity: &sess.Identity}
	} else {
		r.state = State{Screen: ScreenLanding}
	}
	return r.state, nil
}

// State returns the current snapshot.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// GetStarted moves Landing to RoleSelection. Anywhere else it is a no-op.
func (r *Router) GetStarted() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Screen == ScreenLanding {
		r.state = State{Screen: ScreenRoleSelection}
	}
	return r.state
}

// PickRole moves RoleSelection to CredentialEntry for a valid role.
func (r *Router) PickRole(role models.UserRole) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Screen == ScreenRoleSelection && role.Valid() {
		r.state = State{Screen: ScreenCredentialEntry, SelectedRole: role}
	}
	return r.state
}

// Back steps CredentialEntry to RoleSelection and RoleSelection to Landing.
func (r *Router) Back() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state.Screen {
	case ScreenCredentialEntry:
		r.state = State{Screen: ScreenRoleSelection}
	case ScreenRoleSelection:
		r.state = State{Screen: ScreenLanding}
	}
	return r.state
}

// SubmitCredentials runs the login round trip. Validation failures and
// credential rejections keep the router on CredentialEntry with an error
// annotation; a second submit while one is pending is ignored.
func (r *Router) SubmitCredentials(ctx context.Context, email, password string) (State, error) {
	r.mu.Lock()
	if r.state.Screen != ScreenCredentialEntry || r.loginInFlight {
		state := r.state
		r.mu.Unlock()
		return state, nil
	}

	req := validator.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if errs := r.forms.Validate(req); errs.HasErrors() {
		r.state.LoginError = errs[0].Message
		state := r.state
		r.mu.Unlock()
		return state, nil
	}

	key := strings.ToLower(req.Email)
	if r.limiter != nil && !r.limiter.Allow(key) {
		r.state.LoginError = "too many attempts, try again later"
		state := r.state
		r.mu.Unlock()
		return state, nil
	}

	r.loginInFlight = true
	r.mu.Unlock()

	identity, loginErr := r.authn.Login(ctx, req.Email, req.Password)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginInFlight = false

	if loginErr != nil {
		r.sink.Record(ctx, models.AuditEvent{
			UserRole:  audit.GuestRole,
			Action:    models.AuditLoginFailed,
			Details:   map[string]any{"email": req.Email},
			Timestamp: time.Now(),
			Success:   false,
		})
		r.state.LoginError = auth.ErrInvalidCredentials.Error()
		return r.state, nil
	}

	if _, err := r.sessions.Start(ctx, *identity, r.ttl); err != nil {
		r.state.LoginError = "could not start a session"
		return r.state, fmt.Errorf("failed to start session: %w", err)
	}
	if r.limiter != nil {
		r.limiter.Reset(key)
	}

	r.sink.Record(ctx, models.AuditEvent{
		UserID:    identity.ID,
		UserRole:  string(identity.Role),
		Action:    models.AuditLogin,
		Details:   map[string]any{"email": req.Email},
		Timestamp: time.Now(),
		Success:   true,
	})
	r.logger.Info("login accepted", "user_id", identity.ID, "role", identity.Role)

	r.state = State{Screen: ScreenDashboard, Identity: identity}
	return r.state, nil
}

// Logout ends the session from Dashboard. Anywhere else it is a no-op.
func (r *Router) Logout(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Screen != ScreenDashboard {
		return r.state, nil
	}

	identity := r.state.Identity
	if err := r.sessions.End(ctx); err != nil {
		return r.state, fmt.Errorf("failed to end session: %w", err)
	}
	if identity != nil {
		r.sink.Record(ctx, models.AuditEvent{
			UserID:    identity.ID,
			UserRole:  string(identity.Role),
			Action:    models.AuditLogout,
			Timestamp: time.Now(),
			Success:   true,
		})
	}
	r.state = State{Screen: ScreenLanding}
	return r.state, nil
}

// CheckSession re-validates the stored session while on Dashboard. Expiry is
// a silent logout: storage is cleared and the router lands on Landing with no
// error annotation.
func (r *Router) CheckSession(ctx context.Context) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Screen != ScreenDashboard {
		return r.state, nil
	}

	sess, err := r.sessions.Restore(ctx)
	if err != nil {
		return r.state, fmt.Errorf("failed to check session: %w", err)
	}
	if sess == nil {
		if err := r.sessions.End(ctx); err != nil {
			return r.state, fmt.Errorf("failed to end expired session: %w", err)
		}
		r.logger.Info("session expired, returning to landing")
		r.state = State{Screen: ScreenLanding}
		return r.state, nil
	}

	r.state.Identity = &sess.Identity
	return r.state, nil
}
