package models

import "gorm.io/gorm"

// WishlistItem is a product a user has saved for later. Like cart items,
// display fields are cached at save time.
type WishlistItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string  `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	ProductID  string  `json:"productId" gorm:"index;type:varchar(36)" validate:"required"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Price      float64 `json:"price"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
