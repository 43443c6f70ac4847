package handlers

import (
	"errors"
	"log"

	"gamehub/internal/middleware"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	products *services.ProductService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(products *services.ProductService) *CartHandler {
	return &CartHandler{
		products: products,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/toggle", h.HandleToggleOpen)
	cartRoutes.Put("/open", h.HandleSetOpen)
}

// HandleGetCart returns the cart contents plus derived totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart := middleware.SessionFrom(c).Cart
	return c.JSON(fiber.Map{
		"items": cart.Items(),
		"total": cart.Total(),
		"count": cart.ItemCount(),
		"open":  cart.IsOpen(),
	})
}

// AddItemRequest represents the request body for adding a product.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1"`
}

// HandleAddItem resolves the product and merges it into the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error resolving product %s: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	cart := middleware.SessionFrom(c).Cart
	cart.AddItem(*product, req.Quantity)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"items": cart.Items(),
		"total": cart.Total(),
		"count": cart.ItemCount(),
		"open":  cart.IsOpen(),
	})
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets a line item's quantity. Zero or negative removes
// the item.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart := middleware.SessionFrom(c).Cart
	cart.UpdateQuantity(c.Params("productId"), req.Quantity)

	return c.JSON(fiber.Map{
		"items": cart.Items(),
		"total": cart.Total(),
		"count": cart.ItemCount(),
	})
}

// HandleRemoveItem deletes a line item.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart := middleware.SessionFrom(c).Cart
	cart.RemoveItem(c.Params("productId"))

	return c.JSON(fiber.Map{
		"items": cart.Items(),
		"total": cart.Total(),
		"count": cart.ItemCount(),
	})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	middleware.SessionFrom(c).Cart.Clear()
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

// HandleToggleOpen flips the cart drawer flag.
func (h *CartHandler) HandleToggleOpen(c *fiber.Ctx) error {
	cart := middleware.SessionFrom(c).Cart
	cart.ToggleOpen()
	return c.JSON(fiber.Map{
		"open": cart.IsOpen(),
	})
}

// SetOpenRequest represents the request body for setting the drawer flag.
type SetOpenRequest struct {
	Open bool `json:"open"`
}

// HandleSetOpen sets the cart drawer flag.
func (h *CartHandler) HandleSetOpen(c *fiber.Ctx) error {
	var req SetOpenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart := middleware.SessionFrom(c).Cart
	cart.SetOpen(req.Open)
	return c.JSON(fiber.Map{
		"open": cart.IsOpen(),
	})
}
