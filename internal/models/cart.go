package models

import "strings"

// LocalIDPrefix marks cart item identifiers generated client-side before a
// remote sync has assigned a server record id.
const LocalIDPrefix = "local-"

// CartItem is one product-plus-quantity entry in a cart. Product display
// fields are cached at add time so an item still renders after the product
// itself is gone from the catalog.
type CartItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID    string  `json:"userId,omitempty" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"index;type:varchar(36)" validate:"required"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Category  string  `json:"category,omitempty"`
	Platform  string  `json:"platform,omitempty"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}

// Synced reports whether the item carries a server-assigned record id.
func (i CartItem) Synced() bool {
	return i.ID != "" && !strings.HasPrefix(i.ID, LocalIDPrefix)
}

// Subtotal is the line total for this item.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
