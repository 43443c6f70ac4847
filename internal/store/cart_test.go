package store_test

import (
	"errors"
	"fmt"
	"testing"

	"gamehub/internal/models"
	"gamehub/internal/storage"
	"gamehub/internal/store"
	"gamehub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRemoteCart is a mock implementation of repositories.CartRepository.
type MockRemoteCart struct {
	mock.Mock
}

func (m *MockRemoteCart) GetByUser(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockRemoteCart) Create(item *models.CartItem) error {
	args := m.Called(item)
	if args.Error(0) == nil {
		// The real repository assigns a server record id in place.
		item.ID = "srv-" + item.ProductID
	}
	return args.Error(0)
}

func (m *MockRemoteCart) UpdateQuantity(id string, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

func (m *MockRemoteCart) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestCart(remote *MockRemoteCart) (*store.Cart, storage.Store) {
	st := storage.NewMemoryStore()
	cart := store.NewCart("client-1", remote, st, store.NopNotifier{}, logger.Discard())
	return cart, st
}

func testProduct(id string, price float64) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Category: models.CategoryGiftCard,
	}
}

func TestCart_AddItemMergesByProductID(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.AddItem(testProduct("p2", 5.00), 3)

	items := cart.Items()
	assert.Len(t, items, 2, "one line item per distinct product")
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)
	for _, item := range items {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
	// Anonymous mutations never reach the remote cart.
	remote.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCart_AddItemClampsQuantityToOne(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("p1", 9.99), 0)

	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_AddItemOpensDrawer(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	assert.False(t, cart.IsOpen())
	cart.AddItem(testProduct("p1", 9.99), 1)
	assert.True(t, cart.IsOpen())
}

func TestCart_UpdateQuantityBelowOneRemoves(t *testing.T) {
	for _, quantity := range []int{0, -1} {
		t.Run(fmt.Sprintf("quantity_%d", quantity), func(t *testing.T) {
			remote := new(MockRemoteCart)
			cart, _ := newTestCart(remote)

			cart.AddItem(testProduct("p1", 9.99), 2)
			cart.UpdateQuantity("p1", quantity)

			assert.Empty(t, cart.Items())
			assert.Equal(t, 0.0, cart.Total())
		})
	}
}

func TestCart_ScenarioAddUpdateRemove(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("1", 9.99), 1)
	assert.InDelta(t, 9.99, cart.Total(), 1e-9)

	cart.AddItem(testProduct("1", 9.99), 1)
	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 19.98, cart.Total(), 1e-9)

	cart.UpdateQuantity("1", 1)
	assert.InDelta(t, 9.99, cart.Total(), 1e-9)

	cart.RemoveItem("1")
	assert.Empty(t, cart.Items())
	assert.Equal(t, 0.0, cart.Total())
}

func TestCart_AddThenRemoveRestoresTotal(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("p1", 12.50), 2)
	before := cart.Total()

	cart.AddItem(testProduct("p2", 7.77), 3)
	cart.RemoveItem("p2")

	assert.InDelta(t, before, cart.Total(), 1e-9)
}

func TestCart_ItemCountSumsQuantities(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("p1", 1.00), 2)
	cart.AddItem(testProduct("p2", 2.00), 5)

	assert.Equal(t, 7, cart.ItemCount())
}

func TestCart_SnapshotRoundTrip(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, st := newTestCart(remote)

	cart.AddItem(testProduct("p1", 9.99), 2)
	cart.AddItem(testProduct("p2", 4.50), 1)
	cart.SetOpen(true)

	reloaded := store.NewCart("client-1", remote, st, store.NopNotifier{}, logger.Discard())
	assert.Equal(t, cart.Items(), reloaded.Items())
	// The display flag is transient and never persisted.
	assert.False(t, reloaded.IsOpen())
}

func TestCart_CorruptSnapshotDiscarded(t *testing.T) {
	remote := new(MockRemoteCart)
	st := storage.NewMemoryStore()
	st.Set("client-1", storage.ScopeLocal, storage.KeyCart, "{not json")

	cart := store.NewCart("client-1", remote, st, store.NopNotifier{}, logger.Discard())
	assert.Empty(t, cart.Items())

	_, err := st.Get("client-1", storage.ScopeLocal, storage.KeyCart)
	assert.ErrorIs(t, err, storage.ErrNotFound, "corrupt entry is wiped, not repaired")
}

func TestCart_ClearEmptiesCollectionAndStorage(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, st := newTestCart(remote)

	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.Clear()

	assert.Empty(t, cart.Items())
	_, err := st.Get("client-1", storage.ScopeLocal, storage.KeyCart)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCart_ReconcileOnLoginReplacesWithNonEmptyRemote(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("5", 20.00), 1)

	remoteItems := []models.CartItem{
		{ID: "srv-7", UserID: "u1", ProductID: "7", Name: "Remote item", Price: 15.00, Quantity: 2},
	}
	remote.On("GetByUser", "u1").Return(remoteItems, nil).Once()

	cart.HandleIdentityChange(&models.User{ID: "u1"})

	// The local anonymous item is discarded wholesale, not merged.
	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "7", items[0].ProductID)
	assert.InDelta(t, 30.00, cart.Total(), 1e-9)
	remote.AssertExpectations(t)
}

func TestCart_ReconcileOnLoginKeepsLocalWhenRemoteEmpty(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("5", 20.00), 1)

	remote.On("GetByUser", "u1").Return([]models.CartItem{}, nil).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	items := cart.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "5", items[0].ProductID)
	remote.AssertExpectations(t)
}

func TestCart_ReconcileSoftFailsOnRemoteError(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("5", 20.00), 1)

	remote.On("GetByUser", "u1").Return(nil, errors.New("connection refused")).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	// The failure is swallowed; the local cart survives.
	assert.Len(t, cart.Items(), 1)
	remote.AssertExpectations(t)
}

func TestCart_MirrorCreateSplicesRemoteID(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	remote.On("GetByUser", "u1").Return([]models.CartItem{}, nil).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	remote.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.Wait()

	items := cart.Items()
	assert.Len(t, items, 1)
	assert.True(t, items[0].Synced(), "server id spliced into the local item")
	assert.Equal(t, "srv-p1", items[0].ID)
	remote.AssertExpectations(t)
}

func TestCart_MirrorCreateFailureKeepsLocalItem(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	remote.On("GetByUser", "u1").Return([]models.CartItem{}, nil).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	remote.On("Create", mock.AnythingOfType("*models.CartItem")).Return(errors.New("boom")).Once()
	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.Wait()

	// Local state is authoritative; the failed mirror is invisible here.
	items := cart.Items()
	assert.Len(t, items, 1)
	assert.False(t, items[0].Synced())
	remote.AssertExpectations(t)
}

func TestCart_RemoveIssuesBestEffortRemoteDelete(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	remote.On("GetByUser", "u1").Return([]models.CartItem{}, nil).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	remote.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.Wait()

	remote.On("Delete", "srv-p1").Return(errors.New("gone already")).Once()
	cart.RemoveItem("p1")
	cart.Wait()

	// The remote failure never rolls back the local removal.
	assert.Empty(t, cart.Items())
	remote.AssertExpectations(t)
}

func TestCart_UpdateQuantityMirrorsSyncedItems(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	remote.On("GetByUser", "u1").Return([]models.CartItem{}, nil).Once()
	cart.HandleIdentityChange(&models.User{ID: "u1"})

	remote.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()
	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.Wait()

	remote.On("UpdateQuantity", "srv-p1", 4).Return(nil).Once()
	cart.UpdateQuantity("p1", 4)
	cart.Wait()

	assert.Equal(t, 4, cart.Items()[0].Quantity)
	remote.AssertExpectations(t)
}

func TestCart_LogoutKeepsCartContents(t *testing.T) {
	remote := new(MockRemoteCart)
	cart, _ := newTestCart(remote)

	cart.AddItem(testProduct("p1", 9.99), 1)
	cart.HandleIdentityChange(nil)

	assert.Len(t, cart.Items(), 1)
}
