package store_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/storage"
	"gamehub/internal/store"
	"gamehub/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

const testSecret = "test_jwt_secret"

func newTestIdentity(users *MockUserRepository) (*store.Identity, storage.Store) {
	st := storage.NewMemoryStore()
	identity := store.NewIdentity("client-1", users, st, store.NopNotifier{}, logger.Discard(), testSecret)
	return identity, st
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func TestIdentity_DemoLoginBypassesRepository(t *testing.T) {
	users := new(MockUserRepository)
	identity, st := newTestIdentity(users)

	user, err := identity.Login(store.Credentials{Email: store.DemoEmail, Password: store.DemoPassword})
	assert.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Jhon", user.FirstName)
	assert.Equal(t, store.DemoToken, identity.Token())
	assert.True(t, identity.IsAuthenticated())

	// The fixed demo pair never contacts the user repository.
	users.AssertNotCalled(t, "GetByEmail", mock.Anything)

	stored, err := st.Get("client-1", storage.ScopeSession, storage.KeyUser)
	assert.NoError(t, err)
	assert.Contains(t, stored, store.DemoEmail)
	token, err := st.Get("client-1", storage.ScopeSession, storage.KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, store.DemoToken, token)
}

func TestIdentity_LoginUnknownEmailFails(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	users.On("GetByEmail", "nobody@mail.com").Return(nil, notFoundErr("nobody@mail.com")).Once()

	_, err := identity.Login(store.Credentials{Email: "nobody@mail.com", Password: "password123"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	assert.False(t, identity.IsAuthenticated())
	users.AssertExpectations(t)
}

func TestIdentity_LoginWrongPasswordFails(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &models.User{ID: "u1", Email: "a@b.com", Password: string(hashed)}
	users.On("GetByEmail", "a@b.com").Return(existing, nil).Once()

	_, err := identity.Login(store.Credentials{Email: "a@b.com", Password: "wrongpassword"})
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)
	assert.False(t, identity.IsAuthenticated())
	users.AssertExpectations(t)
}

func TestIdentity_LoginSuccessIssuesToken(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &models.User{ID: "u1", Email: "a@b.com", FirstName: "Ada", LastName: "L", Password: string(hashed)}
	users.On("GetByEmail", "a@b.com").Return(existing, nil).Once()

	var observed *models.User
	identity.OnChange(func(u *models.User) { observed = u })

	user, err := identity.Login(store.Credentials{Email: "a@b.com", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.Password)
	assert.NotNil(t, observed)
	assert.Equal(t, "u1", observed.ID)

	parsed, err := jwt.Parse(identity.Token(), func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "u1", claims["user_id"])
	users.AssertExpectations(t)
}

func TestIdentity_LoginTransportErrorSurfaces(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	users.On("GetByEmail", "a@b.com").Return(nil, errors.New("connection refused")).Once()

	_, err := identity.Login(store.Credentials{Email: "a@b.com", Password: "password123"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrInvalidCredentials)
	assert.False(t, identity.IsAuthenticated())
	users.AssertExpectations(t)
}

func TestIdentity_RegisterDoesNotAuthenticate(t *testing.T) {
	users := new(MockUserRepository)
	identity, st := newTestIdentity(users)

	users.On("GetByEmail", "new@mail.com").Return(nil, notFoundErr("new@mail.com")).Once()
	var created *models.User
	users.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := identity.Register(models.User{Email: "new@mail.com", FirstName: "New", LastName: "User", Password: "password123"})
	assert.NoError(t, err)
	assert.Empty(t, user.Password)

	// The stored password is a bcrypt hash, never the plaintext.
	assert.NotNil(t, created)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))

	// Registration leaves local identity state untouched.
	assert.False(t, identity.IsAuthenticated())
	_, err = st.Get("client-1", storage.ScopeSession, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	users.AssertExpectations(t)
}

func TestIdentity_RegisterEmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	users.On("GetByEmail", "taken@mail.com").Return(&models.User{ID: "u1"}, nil).Once()

	_, err := identity.Register(models.User{Email: "taken@mail.com", FirstName: "X", LastName: "Y", Password: "password123"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)
	users.AssertExpectations(t)
}

func TestIdentity_LogoutClearsStateAndStorage(t *testing.T) {
	users := new(MockUserRepository)
	identity, st := newTestIdentity(users)

	_, err := identity.Login(store.Credentials{Email: store.DemoEmail, Password: store.DemoPassword})
	assert.NoError(t, err)

	var observed *models.User = &models.User{}
	identity.OnChange(func(u *models.User) { observed = u })

	identity.Logout()

	assert.False(t, identity.IsAuthenticated())
	assert.Empty(t, identity.Token())
	assert.Nil(t, observed)
	_, err = st.Get("client-1", storage.ScopeSession, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = st.Get("client-1", storage.ScopeSession, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIdentity_LogoutWhenAnonymousStillSucceeds(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	identity.Logout()
	assert.False(t, identity.IsAuthenticated())
}

func TestIdentity_RestoresFromSnapshot(t *testing.T) {
	users := new(MockUserRepository)
	st := storage.NewMemoryStore()

	raw, _ := json.Marshal(models.User{ID: "u1", Email: "a@b.com", FirstName: "Ada"})
	st.Set("client-1", storage.ScopeSession, storage.KeyUser, string(raw))
	st.Set("client-1", storage.ScopeSession, storage.KeyToken, "some-token")

	identity := store.NewIdentity("client-1", users, st, store.NopNotifier{}, logger.Discard(), testSecret)
	assert.True(t, identity.IsAuthenticated())
	assert.Equal(t, "u1", identity.Current().ID)
	assert.Equal(t, "some-token", identity.Token())
}

func TestIdentity_CorruptSnapshotStartsAnonymous(t *testing.T) {
	users := new(MockUserRepository)
	st := storage.NewMemoryStore()

	st.Set("client-1", storage.ScopeSession, storage.KeyUser, "{broken")
	st.Set("client-1", storage.ScopeSession, storage.KeyToken, "stale-token")

	identity := store.NewIdentity("client-1", users, st, store.NopNotifier{}, logger.Discard(), testSecret)
	assert.False(t, identity.IsAuthenticated())

	// The whole session scope is wiped, not just the broken key.
	_, err := st.Get("client-1", storage.ScopeSession, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIdentity_UpdateProfileMergesAndPersists(t *testing.T) {
	users := new(MockUserRepository)
	identity, st := newTestIdentity(users)

	_, err := identity.Login(store.Credentials{Email: store.DemoEmail, Password: store.DemoPassword})
	assert.NoError(t, err)

	first := "Jane"
	user, err := identity.UpdateProfile(store.ProfileUpdate{FirstName: &first})
	assert.NoError(t, err)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName, "unset fields keep their value")

	stored, err := st.Get("client-1", storage.ScopeSession, storage.KeyUser)
	assert.NoError(t, err)
	assert.Contains(t, stored, "Jane")
}

func TestIdentity_UpdateProfileAnonymousIsNoOp(t *testing.T) {
	users := new(MockUserRepository)
	identity, _ := newTestIdentity(users)

	first := "Jane"
	_, err := identity.UpdateProfile(store.ProfileUpdate{FirstName: &first})
	assert.ErrorIs(t, err, store.ErrNotAuthenticated)
}
