package repositories

import (
	"fmt"

	"gamehub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser returns every cart item stored for the user.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// Create stores a cart item and assigns it a server record id. The caller's
// local placeholder id is replaced in place.
func (r *GORMCartRepository) Create(item *models.CartItem) error {
	item.ID = uuid.New().String()
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing cart item.
func (r *GORMCartRepository) UpdateQuantity(id string, quantity int) error {
	result := r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a cart item by its record id.
func (r *GORMCartRepository) Delete(id string) error {
	result := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
