package storage_test

import (
	"testing"

	"gamehub/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	st := storage.NewMemoryStore()

	assert.NoError(t, st.Set("c1", storage.ScopeLocal, storage.KeyCart, "[]"))
	value, err := st.Get("c1", storage.ScopeLocal, storage.KeyCart)
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)

	assert.NoError(t, st.Delete("c1", storage.ScopeLocal, storage.KeyCart))
	_, err = st.Get("c1", storage.ScopeLocal, storage.KeyCart)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent entry is not an error.
	assert.NoError(t, st.Delete("c1", storage.ScopeLocal, storage.KeyCart))
}

func TestMemoryStore_ScopesAreIndependent(t *testing.T) {
	st := storage.NewMemoryStore()

	st.Set("c1", storage.ScopeSession, storage.KeyUser, "user-json")
	st.Set("c1", storage.ScopeSession, storage.KeyToken, "tok")
	st.Set("c1", storage.ScopeLocal, storage.KeyCart, "[]")

	assert.NoError(t, st.ClearScope("c1", storage.ScopeSession))

	_, err := st.Get("c1", storage.ScopeSession, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = st.Get("c1", storage.ScopeSession, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// The cross-session cart entry survives a session wipe.
	value, err := st.Get("c1", storage.ScopeLocal, storage.KeyCart)
	assert.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestMemoryStore_ClientsAreIsolated(t *testing.T) {
	st := storage.NewMemoryStore()

	st.Set("c1", storage.ScopeLocal, storage.KeyTheme, "dark")
	st.Set("c2", storage.ScopeLocal, storage.KeyTheme, "light")

	assert.NoError(t, st.ClearScope("c1", storage.ScopeLocal))

	_, err := st.Get("c1", storage.ScopeLocal, storage.KeyTheme)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	value, err := st.Get("c2", storage.ScopeLocal, storage.KeyTheme)
	assert.NoError(t, err)
	assert.Equal(t, "light", value)
}
