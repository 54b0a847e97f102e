package handlers

import (
	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/middleware"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and checkout sessions.
type OrderHandler struct {
	orderService   *services.OrderService
	paymentService *services.PaymentService
	validate       *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, paymentService *services.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminOnly fiber.Handler) {
	orderRoutes := router.Group("/orders", authRequired)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my-orders", h.HandleGetMyOrders)
	orderRoutes.Get("/", adminOnly, h.HandleGetAllOrders)
	orderRoutes.Patch("/:orderId/status", adminOnly, h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:orderId/checkout-session", h.HandleCreateCheckoutSession)
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	Address       string `json:"address" validate:"required,min=10"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cash card"`
}

// HandleCreateOrder snapshots the caller's cart into a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	order, err := h.orderService.CreateOrder(middleware.UserID(c), req.Address, req.PaymentMethod)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "order placed successfully",
		"data":    order,
	})
}

// HandleGetMyOrders lists the caller's orders newest-first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetMyOrders(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// HandleGetAllOrders lists every order newest-first. Admin only.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

// UpdateOrderStatusRequest represents the request body for status updates.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped cancelled delivered"`
}

// HandleUpdateOrderStatus overwrites an order's status. Admin only.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	order, err := h.orderService.UpdateOrderStatus(c.Params("orderId"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "order status updated",
		"data":    order,
	})
}

// HandleCreateCheckoutSession creates a hosted-payment session for the
// caller's order and returns the redirect URL.
func (h *OrderHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	url, err := h.paymentService.CreateCheckoutSession(c.Params("orderId"), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"url": url},
	})
}
