package store

import (
	"log/slog"
	"sync"

	"gamehub/internal/repositories"
	"gamehub/internal/storage"
)

// Session is the pair of state containers owned by one client. The cart
// observes the identity store, so a login reconciles the cart with the
// remote one.
type Session struct {
	ClientID string
	Identity *Identity
	Cart     *Cart
}

// Deps carries everything a session needs. One Deps is built in main and
// shared by all sessions.
type Deps struct {
	Users     repositories.UserRepository
	Carts     repositories.CartRepository
	Storage   storage.Store
	Notifier  Notifier
	Log       *slog.Logger
	JWTSecret string
}

// Manager hands out one Session per client id, creating it on first sight.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
}

// NewManager creates a new Manager.
func NewManager(deps Deps) *Manager {
	if deps.Notifier == nil {
		deps.Notifier = NopNotifier{}
	}
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// Session returns the client's session, constructing and wiring the store
// pair on first use.
func (m *Manager) Session(clientID string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[clientID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[clientID]; ok {
		return s
	}

	identity := NewIdentity(clientID, m.deps.Users, m.deps.Storage, m.deps.Notifier, m.deps.Log, m.deps.JWTSecret)
	cart := NewCart(clientID, m.deps.Carts, m.deps.Storage, m.deps.Notifier, m.deps.Log)
	cart.HandleIdentityChange(identity.Current())
	identity.OnChange(cart.HandleIdentityChange)

	s = &Session{
		ClientID: clientID,
		Identity: identity,
		Cart:     cart,
	}
	m.sessions[clientID] = s
	return s
}

// Wait drains in-flight remote mirroring across all sessions. Called during
// graceful shutdown.
func (m *Manager) Wait() {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.Cart.Wait()
	}
}
