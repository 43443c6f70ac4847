package repositories

import (
	"fmt"
	"sync"

	"gamehub/internal/models"

	"github.com/google/uuid"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	items map[string]models.WishlistItem
	mu    sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items: make(map[string]models.WishlistItem),
	}
}

// GetByUser returns the user's saved items.
func (r *MockWishlistRepository) GetByUser(userID string) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var itemList []models.WishlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	return itemList, nil
}

// Add stores a wishlist item.
func (r *MockWishlistRepository) Add(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Remove deletes a wishlist item by its id.
func (r *MockWishlistRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("wishlist item with ID %s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
