// Package auth owns the session lifecycle: login against the token
// endpoint, registration with field-level validation, logout, and the
// explicit session object the shell and pages read instead of a
// process-wide store.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkaranja/freelancecrm/internal/api"
)

// Storage keys for the persisted session and remembered user record.
const (
	sessionKey = "auth.session"
	userKey    = "auth.user"
)

// Session is the authenticated state persisted between runs.
type Session struct {
	Username string `json:"username"`
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
}

// User is the remembered user record read at shell start to greet the user.
type User struct {
	Username string `json:"username"`
}

// API is the auth slice of the remote collaborator.
type API interface {
	Obtain(ctx context.Context, username, password string) (api.TokenPair, error)
	Refresh(ctx context.Context, refresh string) (api.TokenPair, error)
	Register(ctx context.Context, username, password string) (api.RegisteredUser, error)
}

// Store persists small JSON values between runs.
type Store interface {
	Get(key string, v any) (bool, error)
	Put(key string, v any) error
	Delete(key string) error
}

// Manager holds the current session and keeps the store in sync with it.
type Manager struct {
	api    API
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	current *Session
}

// NewManager creates a session manager. Call Init to read any persisted
// session before first use.
func NewManager(authAPI API, store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{api: authAPI, store: store, logger: logger}
}

// Init loads the persisted session, if any. Absence is not an error; route
// guarding is the shell's concern, not this package's.
func (m *Manager) Init() error {
	var sess Session
	ok, err := m.store.Get(sessionKey, &sess)
	if err != nil {
		return fmt.Errorf("reading persisted session: %w", err)
	}
	if ok {
		m.mu.Lock()
		m.current = &sess
		m.mu.Unlock()
	}
	return nil
}

// Current returns the active session.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// AccessToken is an api.TokenFunc over the active session.
func (m *Manager) AccessToken() (string, bool) {
	sess, ok := m.Current()
	if !ok {
		return "", false
	}
	return sess.Access, true
}

// Login exchanges credentials for a token pair and persists the session.
// Every failure maps to ErrInvalidCredentials; no server detail leaks to
// the login screen.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	pair, err := m.api.Obtain(ctx, username, password)
	if err != nil {
		m.logger.Debug("login rejected", "username", username, "error", err)
		return ErrInvalidCredentials
	}

	sess := Session{Username: username, Access: pair.Access, Refresh: pair.Refresh}
	if err := m.persist(sess); err != nil {
		return err
	}
	m.logger.Info("logged in", "username", username)
	return nil
}

// Register creates an account and logs straight in, as the signup page
// does. Local validation fails fast without a request; server field errors
// pass through verbatim for per-field display.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	if err := validateRegistration(username, password); err != nil {
		return err
	}
	if _, err := m.api.Register(ctx, username, password); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return m.Login(ctx, username, password)
}

// Refresh replaces the access token using the stored refresh token.
func (m *Manager) Refresh(ctx context.Context) error {
	sess, ok := m.Current()
	if !ok {
		return ErrNotLoggedIn
	}
	pair, err := m.api.Refresh(ctx, sess.Refresh)
	if err != nil {
		return fmt.Errorf("refreshing session: %w", err)
	}
	sess.Access = pair.Access
	sess.Refresh = pair.Refresh
	return m.persist(sess)
}

// Logout clears the session everywhere: memory, persisted session, and the
// remembered user record.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Delete(sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	if err := m.store.Delete(userKey); err != nil {
		return fmt.Errorf("clearing user record: %w", err)
	}
	m.logger.Info("logged out")
	return nil
}

// RememberedUser returns the persisted user record, used to greet the user
// before any page loads.
func (m *Manager) RememberedUser() (User, bool) {
	var user User
	ok, err := m.store.Get(userKey, &user)
	if err != nil || !ok {
		return User{}, false
	}
	return user, true
}

func (m *Manager) persist(sess Session) error {
	if err := m.store.Put(sessionKey, sess); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	if err := m.store.Put(userKey, User{Username: sess.Username}); err != nil {
		return fmt.Errorf("persisting user record: %w", err)
	}
	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()
	return nil
}
