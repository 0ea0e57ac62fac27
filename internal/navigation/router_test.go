package navigation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/coaching-service/internal/audit"
	"github.com/SAP-F-2025/coaching-service/internal/auth"
	"github.com/SAP-F-2025/coaching-service/internal/dataset"
	"github.com/SAP-F-2025/coaching-service/internal/models"
	"github.com/SAP-F-2025/coaching-service/internal/session"
	"github.com/SAP-F-2025/coaching-service/internal/storage"
	"github.com/SAP-F-2025/coaching-service/internal/utils"
	"github.com/SAP-F-2025/coaching-service/internal/validator"
)

const testTTL = 2 * time.Hour

type fixture struct {
	router  *Router
	store   *storage.MemoryStore
	sink    *audit.MockSink
	clock   func() time.Time
	setTime func(time.Time)
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	now := time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	setTime := func(t time.Time) {
		mu.Lock()
		defer mu.Unlock()
		now = t
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(store, logger, session.WithClock(clock))
	authn := auth.NewStaticAuthenticator(dataset.DemoCredentials())
	sink := audit.NewMockSink()

	router := NewRouter(sessions, authn, validator.New(), sink,
		utils.NewSlogLogger(logger), testTTL, opts...)
	return &fixture{router: router, store: store, sink: sink, clock: clock, setTime: setTime}
}

func (f *fixture) loginAs(t *testing.T, email, password string) State {
	t.Helper()
	ctx := context.Background()

	f.router.GetStarted()
	f.router.PickRole(models.RoleAdvisor)
	state, err := f.router.SubmitCredentials(ctx, email, password)
	if err != nil {
		t.Fatalf("SubmitCredentials: %v", err)
	}
	return state
}

func TestRouter_FreshStartLandsOnLanding(t *testing.T) {
	f := newFixture(t)

	state, err := f.router.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if state.Screen != ScreenLanding {
		t.Errorf("screen = %q, want landing", state.Screen)
	}
}

func TestRouter_ColdStartRestoresSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.router.Start(ctx)
	f.loginAs(t, "wichai@university.example", "Advisor123!@#")

	// A second router over the same storage simulates a page reload.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(f.store, logger, session.WithClock(f.clock))
	reloaded := NewRouter(sessions, auth.NewStaticAuthenticator(dataset.DemoCredentials()),
		validator.New(), audit.NewMockSink(), utils.NewSlogLogger(logger), testTTL)

	state, err := reloaded.Start(ctx)
	if err != nil {
		t.Fatalf("Start after reload: %v", err)
	}
	if state.Screen != ScreenDashboard || state.Identity == nil || state.Identity.ID != "a1" {
		t.Errorf("state = %+v, want dashboard as a1", state)
	}
}

func TestRouter_SuccessfulAdvisorLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)

	state := f.loginAs(t, "wichai@university.example", "Advisor123!@#")

	if state.Screen != ScreenDashboard {
		t.Fatalf("screen = %q, want dashboard", state.Screen)
	}
	if state.Identity == nil || state.Identity.Role != models.RoleAdvisor {
		t.Errorf("identity = %+v, want advisor", state.Identity)
	}
	if _, err := f.store.Get(ctx, "current_identity"); err != nil {
		t.Errorf("current_identity not stored: %v", err)
	}
	if _, err := f.store.Get(ctx, "session_token"); err != nil {
		t.Errorf("session_token not stored: %v", err)
	}

	events := f.sink.Events()
	if len(events) != 1 || events[0].Action != models.AuditLogin || !events[0].Success {
		t.Errorf("audit events = %+v, want one successful login", events)
	}
}

func TestRouter_InvalidCredentialsStayOnForm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)

	state := f.loginAs(t, "wichai@university.example", "wrong")

	if state.Screen != ScreenCredentialEntry {
		t.Fatalf("screen = %q, want credential_entry", state.Screen)
	}
	if state.LoginError != auth.ErrInvalidCredentials.Error() {
		t.Errorf("login error = %q, want the collapsed message", state.LoginError)
	}
	if f.store.Len() != 0 {
		t.Errorf("storage holds %d keys after a rejected login, want 0", f.store.Len())
	}

	events := f.sink.Events()
	if len(events) != 1 || events[0].Action != models.AuditLoginFailed {
		t.Fatalf("audit events = %+v, want one login_failed", events)
	}
	if events[0].UserRole != audit.GuestRole || events[0].UserID != "" {
		t.Errorf("failed login recorded as %q/%q, want guest with no user id",
			events[0].UserID, events[0].UserRole)
	}
}

func TestRouter_ValidationErrorsNeverReachAuthenticator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)
	f.router.GetStarted()
	f.router.PickRole(models.RoleStudent)

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"malformed email", "not-an-email", "Student123!@#"},
		{"empty password", "arthit@student.university.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := f.router.SubmitCredentials(ctx, tt.email, tt.pass)
			if err != nil {
				t.Fatalf("SubmitCredentials: %v", err)
			}
			if state.Screen != ScreenCredentialEntry || state.LoginError == "" {
				t.Errorf("state = %+v, want credential_entry with an inline error", state)
			}
			if state.LoginError == auth.ErrInvalidCredentials.Error() {
				t.Error("validation failure surfaced as a credential rejection")
			}
			if len(f.sink.Events()) != 0 {
				t.Error("validation failures must not reach the audit trail")
			}
		})
	}
}

func TestRouter_LogoutClearsStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)
	f.loginAs(t, "wichai@university.example", "Advisor123!@#")

	state, err := f.router.Logout(ctx)
	if err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if state.Screen != ScreenLanding {
		t.Errorf("screen = %q, want landing", state.Screen)
	}
	if f.store.Len() != 0 {
		t.Errorf("storage holds %d keys after logout, want 0", f.store.Len())
	}

	var sawLogout bool
	for _, ev := range f.sink.Events() {
		if ev.Action == models.AuditLogout && ev.UserID == "a1" {
			sawLogout = true
		}
	}
	if !sawLogout {
		t.Error("no logout audit event recorded")
	}
}

func TestRouter_ExpiredSessionLandsSilently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)
	f.loginAs(t, "wichai@university.example", "Advisor123!@#")

	f.setTime(time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC).Add(testTTL))

	state, err := f.router.CheckSession(ctx)
	if err != nil {
		t.Fatalf("CheckSession: %v", err)
	}
	if state.Screen != ScreenLanding {
		t.Errorf("screen = %q, want landing", state.Screen)
	}
	if state.LoginError != "" {
		t.Errorf("expiry produced a visible error %q, want silence", state.LoginError)
	}
	if f.store.Len() != 0 {
		t.Errorf("storage holds %d keys after expiry, want 0", f.store.Len())
	}
}

func TestRouter_UnlistedTriggersAreNoOps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.router.Start(ctx)

	if state, _ := f.router.Logout(ctx); state.Screen != ScreenLanding {
		t.Error("logout on landing must be a no-op")
	}
	if state := f.router.PickRole(models.RoleStudent); state.Screen != ScreenLanding {
		t.Error("pick on landing must be a no-op")
	}
	if state := f.router.Back(); state.Screen != ScreenLanding {
		t.Error("back on landing must be a no-op")
	}
	if state, _ := f.router.SubmitCredentials(ctx, "a@b.example", "x"); state.Screen != ScreenLanding {
		t.Error("submit on landing must be a no-op")
	}

	f.router.GetStarted()
	if state := f.router.PickRole(models.UserRole("superuser")); state.Screen != ScreenRoleSelection {
		t.Error("picking an unknown role must be a no-op")
	}
	if state := f.router.GetStarted(); state.Screen != ScreenRoleSelection {
		t.Error("get-started on role selection must be a no-op")
	}
}

func TestRouter_BackWalksTheFlow(t *testing.T) {
	f := newFixture(t)
	f.router.Start(context.Background())

	f.router.GetStarted()
	f.router.PickRole(models.RoleStudent)

	if state := f.router.Back(); state.Screen != ScreenRoleSelection {
		t.Errorf("screen = %q, want role_selection", state.Screen)
	}
	if state := f.router.Back(); state.Screen != ScreenLanding {
		t.Errorf("screen = %q, want landing", state.Screen)
	}
}

// blockingAuthenticator parks the first login until released and counts calls.
type blockingAuthenticator struct {
	inner   auth.Authenticator
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (b *blockingAuthenticator) Login(ctx context.Context, email, password string) (*models.User, error) {
	b.mu.Lock()
	b.calls++
	first := b.calls == 1
	b.mu.Unlock()

	if first {
		close(b.started)
		<-b.release
	}
	return b.inner.Login(ctx, email, password)
}

func (b *blockingAuthenticator) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func TestRouter_SecondSubmitWhileInFlightIsIgnored(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	blocking := &blockingAuthenticator{
		inner:   auth.NewStaticAuthenticator(dataset.DemoCredentials()),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	router := NewRouter(session.NewStore(store, logger), blocking, validator.New(),
		audit.NewMockSink(), utils.NewSlogLogger(logger), testTTL)
	ctx := context.Background()

	router.Start(ctx)
	router.GetStarted()
	router.PickRole(models.RoleAdvisor)

	done := make(chan State, 1)
	go func() {
		state, _ := router.SubmitCredentials(ctx, "wichai@university.example", "Advisor123!@#")
		done <- state
	}()

	<-blocking.started
	state, err := router.SubmitCredentials(ctx, "wichai@university.example", "Advisor123!@#")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if state.Screen != ScreenCredentialEntry {
		t.Errorf("second submit moved the router to %q", state.Screen)
	}

	close(blocking.release)
	final := <-done
	if final.Screen != ScreenDashboard {
		t.Errorf("first submit landed on %q, want dashboard", final.Screen)
	}
	if got := blocking.callCount(); got != 1 {
		t.Errorf("authenticator called %d times, want 1", got)
	}
}

func TestRouter_RateLimiterThrottlesSubmits(t *testing.T) {
	limiter := auth.NewRateLimiter(2, time.Minute)
	f := newFixture(t, WithRateLimiter(limiter))
	ctx := context.Background()
	f.router.Start(ctx)
	f.router.GetStarted()
	f.router.PickRole(models.RoleStudent)

	for i := 0; i < 2; i++ {
		state, err := f.router.SubmitCredentials(ctx, "arthit@student.university.example", "wrong")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if state.LoginError != auth.ErrInvalidCredentials.Error() {
			t.Fatalf("submit %d error = %q", i, state.LoginError)
		}
	}

	state, err := f.router.SubmitCredentials(ctx, "arthit@student.university.example", "wrong")
	if err != nil {
		t.Fatalf("throttled submit: %v", err)
	}
	if state.LoginError == auth.ErrInvalidCredentials.Error() || state.LoginError == "" {
		t.Errorf("throttled submit error = %q, want a rate-limit message", state.LoginError)
	}
	if got := len(f.sink.Events()); got != 2 {
		t.Errorf("audit events = %d, want only the two real attempts", got)
	}
}
