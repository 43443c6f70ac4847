package services_test

import (
	"testing"

	"gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"github.com/stretchr/testify/assert"
)

func seededProductService(t *testing.T) *services.ProductService {
	t.Helper()
	repo := repositories.NewMockProductRepository()

	products := []models.Product{
		{ID: "p1", Name: "Mobile Legends 275 Diamonds", Price: 4.99, Category: models.CategoryMobileGame, Featured: true, Trending: true},
		{ID: "p2", Name: "Steam Wallet $50", Price: 50.00, Category: models.CategoryGiftCard, Featured: true},
		{ID: "p3", Name: "Valorant 1000 VP", Price: 9.99, Category: models.CategoryPCGame, Trending: true},
	}
	for i := range products {
		assert.NoError(t, repo.Create(&products[i]))
	}
	assert.NoError(t, repo.CreateCategory(&models.Category{Name: "Gift Cards", Slug: models.CategoryGiftCard}))

	return services.NewProductService(repo)
}

func TestProductService_GetAllProducts(t *testing.T) {
	service := seededProductService(t)

	all, err := service.GetAllProducts(repositories.ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	giftCards, err := service.GetAllProducts(repositories.ProductFilter{Category: models.CategoryGiftCard})
	assert.NoError(t, err)
	assert.Len(t, giftCards, 1)
	assert.Equal(t, "p2", giftCards[0].ID)
}

func TestProductService_FeaturedAndTrending(t *testing.T) {
	service := seededProductService(t)

	featured, err := service.GetFeaturedProducts()
	assert.NoError(t, err)
	assert.Len(t, featured, 2)

	trending, err := service.GetTrendingProducts()
	assert.NoError(t, err)
	assert.Len(t, trending, 2)
}

func TestProductService_GetProductByID(t *testing.T) {
	service := seededProductService(t)

	product, err := service.GetProductByID("p1")
	assert.NoError(t, err)
	assert.Equal(t, "Mobile Legends 275 Diamonds", product.Name)

	_, err = service.GetProductByID("")
	assert.Error(t, err)

	_, err = service.GetProductByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_GetCategories(t *testing.T) {
	service := seededProductService(t)

	categories, err := service.GetCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 1)
}
