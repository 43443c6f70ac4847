package repositories

import "gamehub/internal/models"

// CartRepository is the remote per-identity cart. The session layer treats
// it as best-effort: local cart state stays authoritative for rendering and
// a failed call here is never surfaced to the shopper.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
}
