package handlers

import (
	"errors"
	"log"

	"gamehub/internal/middleware"
	"gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the wishlist.
type WishlistHandler struct {
	wishlist repositories.WishlistRepository
	products *services.ProductService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlist repositories.WishlistRepository, products *services.ProductService) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		products: products,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlistRoutes := router.Group("/wishlist")
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddItem)
	wishlistRoutes.Delete("/:id", h.HandleRemoveItem)
}

// HandleGetWishlist lists the session user's saved items.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	user := middleware.SessionFrom(c).Identity.Current()
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in to view your wishlist",
		})
	}

	items, err := h.wishlist.GetByUser(user.ID)
	if err != nil {
		log.Printf("Error getting wishlist for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// AddWishlistRequest represents the request body for saving a product.
type AddWishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// HandleAddItem saves a product to the session user's wishlist.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	user := middleware.SessionFrom(c).Identity.Current()
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in to save items",
		})
	}

	var req AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save item",
			"error":   err.Error(),
		})
	}

	item := models.WishlistItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
	}
	if err := h.wishlist.Add(&item); err != nil {
		log.Printf("Error adding wishlist item for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save item",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveItem removes a saved item by its id.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	user := middleware.SessionFrom(c).Identity.Current()
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Log in to manage your wishlist",
		})
	}

	itemID := c.Params("id")
	if err := h.wishlist.Remove(itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Wishlist item not found",
			})
		}
		log.Printf("Error removing wishlist item %s: %v", itemID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove item",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed from wishlist",
	})
}
