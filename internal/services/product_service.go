package services

import (
	"fmt"

	"gamehub/internal/models"
	"gamehub/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves products matching the filter.
func (s *ProductService) GetAllProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID cannot be empty")
	}
	return s.repo.GetByID(id)
}

// GetFeaturedProducts retrieves the products flagged for the home carousel.
func (s *ProductService) GetFeaturedProducts() ([]models.Product, error) {
	return s.repo.GetAll(repositories.ProductFilter{Featured: true})
}

// GetTrendingProducts retrieves the products flagged as trending.
func (s *ProductService) GetTrendingProducts() ([]models.Product, error) {
	return s.repo.GetAll(repositories.ProductFilter{Trending: true})
}

// GetCategories retrieves all browsable categories.
func (s *ProductService) GetCategories() ([]models.Category, error) {
	return s.repo.Categories()
}
