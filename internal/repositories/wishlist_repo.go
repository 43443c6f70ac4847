package repositories

import "gamehub/internal/models"

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUser(userID string) ([]models.WishlistItem, error)
	Add(item *models.WishlistItem) error
	Remove(id string) error
}
