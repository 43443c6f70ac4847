package repositories

import (
	"fmt"

	"gamehub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// GetByUser returns the user's saved items.
func (r *GORMWishlistRepository) GetByUser(userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return items, nil
}

// Add stores a wishlist item.
func (r *GORMWishlistRepository) Add(item *models.WishlistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// Remove deletes a wishlist item by its id.
func (r *GORMWishlistRepository) Remove(id string) error {
	result := r.db.Delete(&models.WishlistItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("wishlist item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
