package session

import (
	"context"
	"sync"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/apierr"
	"github.com/gatherly/gatherly/internal/log"
	"github.com/gatherly/gatherly/internal/token"
)

// State is the session lifecycle state
type State int

const (
	// StateUninitialized means Start has not been called yet
	StateUninitialized State = iota
	// StateLoading means an auth operation is resolving
	StateLoading
	// StateAuthenticated means a token is present and a user is loaded
	StateAuthenticated
	// StateAnonymous means there is no valid session
	StateAnonymous
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session handed to subscribers
type Snapshot struct {
	State State
	User  *api.User
}

// Manager owns the client-side authentication state. It is the single
// writer: views read snapshots and subscribe for changes, and only the
// manager mutates the user or state.
type Manager struct {
	mu     sync.RWMutex
	client *api.Client
	tokens *token.Store
	logger *log.Logger

	state   State
	user    *api.User
	lastErr string

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Snapshot)
}

// NewManager creates a session manager over the given API client
func NewManager(client *api.Client) *Manager {
	return &Manager{
		client: client,
		tokens: client.Tokens(),
		logger: log.DefaultLogger().With("component", "session"),
		state:  StateUninitialized,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Start initializes the session. With a token present it attempts to load
// the current user; a failure there means the token is stale, so it is
// discarded and the session settles anonymous. Without a token no network
// call is made.
func (m *Manager) Start(ctx context.Context) {
	m.setState(StateLoading, nil)

	if !m.tokens.HasToken() {
		m.setState(StateAnonymous, nil)
		return
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.logger.WithError(err).Debug("stored token rejected, dropping it")
		if rmErr := m.tokens.Remove(); rmErr != nil {
			m.logger.WithError(rmErr).Warn("failed to remove stale token")
		}
		m.setState(StateAnonymous, nil)
		return
	}

	m.setState(StateAuthenticated, user)
}

// Login authenticates with the given credentials. Both the login call and
// the follow-up user fetch must succeed for the session to become
// authenticated; on any failure the session stays anonymous and the error
// is recorded for LastError. Concurrent calls are not deduplicated.
func (m *Manager) Login(ctx context.Context, creds api.LoginCredentials) bool {
	m.setState(StateLoading, nil)

	if _, err := m.client.Login(ctx, creds); err != nil {
		m.fail("login failed", err)
		return false
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.fail("login failed", err)
		return false
	}

	m.setState(StateAuthenticated, user)
	return true
}

// Register creates an account and signs in. Field-level validation errors
// are flattened into the recorded error message.
func (m *Manager) Register(ctx context.Context, data api.RegisterData) bool {
	m.setState(StateLoading, nil)

	if _, err := m.client.Register(ctx, data); err != nil {
		m.fail("registration failed", err)
		return false
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.fail("registration failed", err)
		return false
	}

	m.setState(StateAuthenticated, user)
	return true
}

// Logout ends the session. The server call is attempted, but the local
// session always ends regardless of its outcome: the token is cleared and
// the state settles anonymous even when the network fails.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.WithError(err).Warn("server-side logout failed, ending local session anyway")
	}

	if err := m.tokens.Remove(); err != nil {
		m.logger.WithError(err).Warn("failed to remove token")
	}
	m.setState(StateAnonymous, nil)
}

// UpdateProfile sends only the provided fields and, on success, replaces
// the in-memory user with the full object the server returned. On failure
// the current user is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update *api.ProfileUpdate) bool {
	user, err := m.client.UpdateProfile(ctx, update)
	if err != nil {
		m.recordError(err)
		return false
	}

	m.mu.Lock()
	m.user = user
	m.lastErr = ""
	m.mu.Unlock()
	m.notify()
	return true
}

// RefreshUser re-fetches the current user if a token exists. Any failure
// is treated as token invalidity: the token is dropped and the session
// reverts to anonymous.
func (m *Manager) RefreshUser(ctx context.Context) {
	if !m.tokens.HasToken() {
		return
	}

	user, err := m.client.CurrentUser(ctx)
	if err != nil {
		m.logger.WithError(err).Debug("refresh failed, logging out locally")
		if rmErr := m.tokens.Remove(); rmErr != nil {
			m.logger.WithError(rmErr).Warn("failed to remove token")
		}
		m.setState(StateAnonymous, nil)
		return
	}

	m.setState(StateAuthenticated, user)
}

// CurrentUser returns the loaded user, or nil when anonymous
func (m *Manager) CurrentUser() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// IsAuthenticated is derived at read time, never stored: it is true only
// when a token is present and a user object has been loaded
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()
	return m.tokens.HasToken() && user != nil
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns the current state and user together
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, User: m.user}
}

// LastError returns the display message recorded by the last failed
// operation, empty after a success
func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Subscribe registers a callback invoked on every session change. The
// returned function unsubscribes it.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) setState(state State, user *api.User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	if state == StateAuthenticated || state == StateLoading {
		m.lastErr = ""
	}
	m.mu.Unlock()
	m.notify()
}

// fail settles the session anonymous and records a display message for
// the error
func (m *Manager) fail(prefix string, err error) {
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.lastErr = displayMessage(prefix, err)
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) recordError(err error) {
	m.mu.Lock()
	m.lastErr = displayMessage("", err)
	m.mu.Unlock()
}

func (m *Manager) notify() {
	snap := m.Snapshot()

	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// displayMessage renders an error for the UI. Field-keyed validation
// errors are flattened into one line.
func displayMessage(prefix string, err error) string {
	msg := err.Error()
	if apiErr := apierr.FromError(err); apiErr != nil {
		msg = apiErr.Flatten()
	}
	if prefix == "" {
		return msg
	}
	return prefix + ": " + msg
}
