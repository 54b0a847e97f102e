package handlers

import (
	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/middleware"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. Every route
// requires authentication: a cart belongs to exactly one user.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Patch("/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/:productId", h.HandleRemoveItem)
}

// AddToCartRequest represents the request body for adding an item.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a product to the caller's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	cart, err := h.service.AddItem(middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// HandleGetCart returns the caller's cart with product details resolved.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// UpdateCartItemRequest represents the request body for quantity changes.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets a cart line's quantity; zero or less removes
// the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	cart, err := h.service.UpdateQuantity(middleware.UserID(c), c.Params("productId"), req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}

// HandleRemoveItem removes a product line from the caller's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.service.RemoveItem(middleware.UserID(c), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    cart,
	})
}
