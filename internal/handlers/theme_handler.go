package handlers

import (
	"gamehub/internal/middleware"
	"gamehub/internal/storage"

	"github.com/gofiber/fiber/v2"
)

const defaultTheme = "dark"

// ThemeHandler owns the persisted display theme. The theme key lives in
// cross-session storage next to the cart but belongs to the presentation
// layer, not to the session stores.
type ThemeHandler struct {
	storage storage.Store
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(st storage.Store) *ThemeHandler {
	return &ThemeHandler{
		storage: st,
	}
}

// RegisterRoutes registers the theme routes with the Fiber app.
func (h *ThemeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/theme", h.HandleGetTheme)
	router.Put("/theme", h.HandleSetTheme)
}

// HandleGetTheme returns the persisted theme, defaulting to dark.
func (h *ThemeHandler) HandleGetTheme(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	theme, err := h.storage.Get(session.ClientID, storage.ScopeLocal, storage.KeyTheme)
	if err != nil {
		theme = defaultTheme
	}
	return c.JSON(fiber.Map{
		"theme": theme,
	})
}

// SetThemeRequest represents the request body for a theme change.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// HandleSetTheme persists the selected theme.
func (h *ThemeHandler) HandleSetTheme(c *fiber.Ctx) error {
	var req SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Theme != "dark" && req.Theme != "light" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Theme must be 'dark' or 'light'",
		})
	}

	session := middleware.SessionFrom(c)
	if err := h.storage.Set(session.ClientID, storage.ScopeLocal, storage.KeyTheme, req.Theme); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not persist theme",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"theme": req.Theme,
	})
}
