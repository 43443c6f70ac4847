package repositories

import "gamehub/internal/models"

// ProductFilter narrows catalog listings. Zero value means "everything".
type ProductFilter struct {
	Category string
	Featured bool
	Trending bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Categories() ([]models.Category, error)
	CreateCategory(category *models.Category) error
}
