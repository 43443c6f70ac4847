package repositories

import (
	"fmt"
	"sync"

	"gamehub/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem
	order []string // creation order, so GetByUser is deterministic
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

// GetByUser returns every cart item stored for the user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.CartItem
	for _, id := range r.order {
		item, ok := r.items[id]
		if ok && item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	return itemList, nil
}

// Create stores a cart item and assigns it a server record id.
func (r *MockCartRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = uuid.New().String()
	r.items[item.ID] = *item
	r.order = append(r.order, item.ID)
	return nil
}

// UpdateQuantity sets the quantity of an existing cart item.
func (r *MockCartRepository) UpdateQuantity(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	item.Quantity = quantity
	r.items[id] = item
	return nil
}

// Delete removes a cart item by its record id.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// Seed inserts items directly, for tests that need a pre-existing remote
// cart. Ignores the usual id assignment when the item already has one.
func (r *MockCartRepository) Seed(items ...models.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}
}
