package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/storage"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Built-in demo account. Logging in with this exact pair never touches the
// user repository.
const (
	DemoEmail    = "user@mail.com"
	DemoPassword = "112233"
	DemoToken    = "demo-token-123"
)

var demoUser = models.User{
	ID:        "1",
	Email:     DemoEmail,
	FirstName: "Jhon",
	LastName:  "Doe",
}

// Typed authentication failures.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Credentials is a login request.
type Credentials struct {
	Email    string
	Password string
}

// ProfileUpdate is a partial identity change. Nil fields are left as-is.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Identity owns the current authenticated identity for one client. It is
// either anonymous or authenticated; all mutation goes through its methods.
type Identity struct {
	mu       sync.Mutex
	clientID string
	user     *models.User
	token    string

	users     repositories.UserRepository
	storage   storage.Store
	notifier  Notifier
	log       *slog.Logger
	jwtSecret []byte
	tokenTTL  time.Duration

	listeners []func(*models.User)
}

// NewIdentity creates the identity store for a client, restoring state from
// the session-scope snapshot when a parseable one exists. A corrupt snapshot
// is wiped and the store starts anonymous.
func NewIdentity(clientID string, users repositories.UserRepository, st storage.Store, notifier Notifier, log *slog.Logger, jwtSecret string) *Identity {
	id := &Identity{
		clientID:  clientID,
		users:     users,
		storage:   st,
		notifier:  notifier,
		log:       log,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
	id.restore()
	return id
}

func (s *Identity) restore() {
	raw, err := s.storage.Get(s.clientID, storage.ScopeSession, storage.KeyUser)
	if err != nil {
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("discarding corrupt identity snapshot", "client", s.clientID, "error", err)
		s.storage.ClearScope(s.clientID, storage.ScopeSession)
		return
	}
	s.user = &user

	if token, err := s.storage.Get(s.clientID, storage.ScopeSession, storage.KeyToken); err == nil {
		s.token = token
	}
}

// OnChange registers a listener invoked with the new identity on login and
// with nil on logout. The cart store uses this to reconcile with the remote
// cart.
func (s *Identity) OnChange(fn func(*models.User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns a copy of the authenticated identity, or nil.
func (s *Identity) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the session token, empty when anonymous.
func (s *Identity) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether an identity is current.
func (s *Identity) IsAuthenticated() bool {
	return s.Current() != nil
}

// Login authenticates the credentials. The demo pair is accepted without a
// repository lookup; anything else resolves against the user repository with
// a bcrypt verification. On failure the store stays in its previous state.
func (s *Identity) Login(creds Credentials) (*models.User, error) {
	if creds.Email == DemoEmail && creds.Password == DemoPassword {
		user := demoUser
		s.establish(&user, DemoToken)
		return &user, nil
	}

	found, err := s.users.GetByEmail(creds.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.notifier.Push(Notice{Level: NoticeError, Title: "Login Failed", Text: "Invalid email or password"})
			return nil, ErrInvalidCredentials
		}
		s.log.Error("user lookup failed", "client", s.clientID, "error", err)
		s.notifier.Push(Notice{Level: NoticeError, Title: "Login Error", Text: "An error occurred during login. Please try again."})
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(creds.Password)); err != nil {
		s.notifier.Push(Notice{Level: NoticeError, Title: "Login Failed", Text: "Invalid email or password"})
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(found)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user := *found
	user.Password = ""
	s.establish(&user, token)
	return &user, nil
}

// establish stores the identity in memory and in session-scope storage, then
// notifies listeners.
func (s *Identity) establish(user *models.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token

	if raw, err := json.Marshal(user); err == nil {
		if err := s.storage.Set(s.clientID, storage.ScopeSession, storage.KeyUser, string(raw)); err != nil {
			s.log.Error("failed to persist identity snapshot", "client", s.clientID, "error", err)
		}
	}
	if err := s.storage.Set(s.clientID, storage.ScopeSession, storage.KeyToken, token); err != nil {
		s.log.Error("failed to persist token", "client", s.clientID, "error", err)
	}
	listeners := s.listeners
	s.mu.Unlock()

	s.notifier.Push(Notice{
		Level: NoticeSuccess,
		Title: "Welcome " + user.FullName(),
		Text:  "You have successfully logged in",
	})
	for _, fn := range listeners {
		fn(user)
	}
}

// Register creates a new account. It never mutates local identity state; the
// caller is expected to prompt a login afterwards.
func (s *Identity) Register(user models.User) (*models.User, error) {
	if _, err := s.users.GetByEmail(user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.log.Error("registration lookup failed", "client", s.clientID, "error", err)
		s.notifier.Push(Notice{Level: NoticeError, Title: "Registration Failed", Text: "An error occurred during registration. Please try again."})
		return nil, fmt.Errorf("registration lookup: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.users.Create(&user); err != nil {
		s.notifier.Push(Notice{Level: NoticeError, Title: "Registration Failed", Text: "An error occurred during registration. Please try again."})
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.notifier.Push(Notice{
		Level: NoticeSuccess,
		Title: "Registration Successful",
		Text:  "Your account has been created. Please log in.",
	})
	created := user
	created.Password = ""
	return &created, nil
}

// Logout clears the in-memory identity and every session-scope storage key.
// It always succeeds.
func (s *Identity) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	if err := s.storage.ClearScope(s.clientID, storage.ScopeSession); err != nil {
		s.log.Error("failed to clear session storage", "client", s.clientID, "error", err)
	}
	listeners := s.listeners
	s.mu.Unlock()

	s.notifier.Push(Notice{
		Level: NoticeInfo,
		Title: "Logged Out",
		Text:  "You have been successfully logged out",
	})
	for _, fn := range listeners {
		fn(nil)
	}
}

// UpdateProfile merges the given fields into the current identity and
// re-persists it. No-op when anonymous.
func (s *Identity) UpdateProfile(update ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, ErrNotAuthenticated
	}

	if update.Email != nil {
		s.user.Email = *update.Email
	}
	if update.FirstName != nil {
		s.user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		s.user.LastName = *update.LastName
	}

	if raw, err := json.Marshal(s.user); err == nil {
		if err := s.storage.Set(s.clientID, storage.ScopeSession, storage.KeyUser, string(raw)); err != nil {
			s.log.Error("failed to persist identity snapshot", "client", s.clientID, "error", err)
		}
	}

	u := *s.user
	return &u, nil
}

func (s *Identity) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
