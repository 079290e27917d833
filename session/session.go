// Package session owns the authenticated-user state for one browser
// session: token acquisition, local expiry checking, attachment to API
// calls, and teardown. The manager is an explicit per-session object
// threaded through the handlers; nothing mutates shared client state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/Buzzy89/client/api"
	"github.com/Buzzy89/client/models"
)

// ErrAuthentication is returned when the server rejects credentials or
// the auth response is missing required fields.
var ErrAuthentication = errors.New("authentication failed")

// State is the session lifecycle state.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthState is the derived authentication status. IsAuthenticated is
// true if and only if User is present and the last token validation
// succeeded.
type AuthState struct {
	User            *models.User
	IsAuthenticated bool
}

// TokenStore persists the session token under the well-known storage
// key. The production store is the token cookie; tests use MemoryStore.
type TokenStore interface {
	// Read returns the persisted token, or "" when none is stored.
	Read() (string, error)
	Write(token string) error
	Clear() error
}

// Manager mediates all credentialed requests for one session.
type Manager struct {
	client *api.Client
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time

	state State
	token string
	user  *models.User
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for the local expiry check.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// New creates a Manager in the Unauthenticated state.
func New(client *api.Client, store TokenStore, opts ...Option) *Manager {
	m := &Manager{
		client: client,
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
		state:  Unauthenticated,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the session from the persisted token. An absent
// token leaves the session unauthenticated. A token whose embedded
// expiry is already in the past is cleared locally without touching
// the network; the server is only consulted for tokens that still look
// valid, via RefreshUser.
func (m *Manager) Initialize(ctx context.Context) error {
	token, err := m.store.Read()
	if err != nil {
		return fmt.Errorf("session: read token: %w", err)
	}
	if token == "" {
		m.setUnauthenticated()
		return nil
	}

	if expired, err := m.tokenExpired(token); err != nil {
		// Undecodable token: treat like an expired one.
		m.logger.Warn("stored token could not be decoded", zap.Error(err))
		m.clearSession()
		return nil
	} else if expired {
		m.logger.Info("stored token expired, clearing session")
		m.clearSession()
		return nil
	}

	m.token = token
	return m.RefreshUser(ctx)
}

// Login exchanges credentials for a token. On success the token is
// persisted and attached and the session becomes authenticated with
// the returned user. On failure the previous state is left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	prev := m.state
	m.state = Authenticating

	resp, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.state = prev
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return err
	}
	if resp.Token == "" || resp.User == nil {
		m.state = prev
		return fmt.Errorf("%w: response missing token or user", ErrAuthentication)
	}

	if err := m.store.Write(resp.Token); err != nil {
		m.state = prev
		return fmt.Errorf("session: persist token: %w", err)
	}
	m.token = resp.Token
	m.user = resp.User
	m.state = Authenticated
	m.logger.Info("login succeeded", zap.String("username", resp.User.Username))
	return nil
}

// Register creates an account and authenticates the session with the
// returned token and user, mirroring Login.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	prev := m.state
	m.state = Authenticating

	resp, err := m.client.Register(ctx, username, email, password)
	if err != nil {
		m.state = prev
		if api.IsUnauthorized(err) {
			return fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return err
	}
	if resp.Token == "" || resp.User == nil {
		m.state = prev
		return fmt.Errorf("%w: response missing token or user", ErrAuthentication)
	}

	if err := m.store.Write(resp.Token); err != nil {
		m.state = prev
		return fmt.Errorf("session: persist token: %w", err)
	}
	m.token = resp.Token
	m.user = resp.User
	m.state = Authenticated
	m.logger.Info("registration succeeded", zap.String("username", resp.User.Username))
	return nil
}

// RefreshUser fetches the current user with the attached token. Any
// failure is treated as an implicit logout: the persisted token and
// session state are cleared and the session ends unauthenticated. The
// error is swallowed by design — a stale token is a recoverable
// condition, not a fault.
func (m *Manager) RefreshUser(ctx context.Context) error {
	if m.token == "" {
		m.clearSession()
		return nil
	}
	user, err := m.client.CurrentUser(ctx, m.token)
	if err != nil {
		m.logger.Info("user refresh failed, logging out", zap.Error(err))
		m.clearSession()
		return nil
	}
	m.user = user
	m.state = Authenticated
	return nil
}

// Logout tears the session down: persisted token cleared, credential
// dropped, user discarded. The caller redirects to the sign-in page.
func (m *Manager) Logout() {
	m.clearSession()
	m.logger.Info("logged out")
}

// AuthState returns the derived authentication status.
func (m *Manager) AuthState() AuthState {
	return AuthState{
		User:            m.user,
		IsAuthenticated: m.state == Authenticated && m.user != nil,
	}
}

// State returns the lifecycle state.
func (m *Manager) State() State { return m.state }

// User returns the authenticated user, or nil.
func (m *Manager) User() *models.User { return m.user }

// Token returns the attached credential for API calls, or "" when the
// session is unauthenticated.
func (m *Manager) Token() string {
	if m.state != Authenticated {
		return ""
	}
	return m.token
}

// tokenExpired decodes the token's embedded expiry without verifying
// the signature. Verification is the server's job; this is only a
// best-effort local check to skip a doomed round trip.
func (m *Manager) tokenExpired(token string) (bool, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, err
	}
	if claims.ExpiresAt == nil {
		// No expiry claim: let the server decide.
		return false, nil
	}
	return claims.ExpiresAt.Time.Before(m.now()), nil
}

func (m *Manager) setUnauthenticated() {
	m.token = ""
	m.user = nil
	m.state = Unauthenticated
}

func (m *Manager) clearSession() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear persisted token", zap.Error(err))
	}
	m.setUnauthenticated()
}
