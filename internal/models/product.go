package models

import "gorm.io/gorm"

// Game categories carried by the catalog.
const (
	CategoryMobileGame    = "mobile-game"
	CategoryPCGame        = "pc-game"
	CategoryGiftCard      = "gift-card"
	CategoryCrossPlatform = "cross-platform"
)

// Product represents a top-up denomination or gift card in the catalog.
type Product struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,min=3,max=100"`
	Slug          string  `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description   string  `json:"description" validate:"omitempty,max=500"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `json:"originalPrice,omitempty" validate:"omitempty,gte=0"` // pre-discount price, 0 when not on sale
	Category      string  `json:"category" validate:"required,oneof=mobile-game pc-game gift-card cross-platform"`
	Platform      string  `json:"platform"`
	Image         string  `json:"image"`
	DeliveryTime  string  `json:"deliveryTime"`
	Featured      bool    `json:"featured"`
	Trending      bool    `json:"trending"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Category is a browsable product grouping.
type Category struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Slug       string `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required"`
	Icon       string `json:"icon"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
