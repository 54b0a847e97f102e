package handlers

import (
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the payment provider's HMAC signature on webhook
// deliveries.
const SignatureHeader = "Checkout-Signature"

// WebhookHandler receives asynchronous payment confirmations from the
// payment provider. It is the one externally-triggered entry point that is
// not a client request.
type WebhookHandler struct {
	paymentService *services.PaymentService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(paymentService *services.PaymentService) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
	}
}

// RegisterRoutes registers the webhook route. No auth middleware: the
// provider authenticates via the signature over the raw body.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/webhook", h.HandleWebhook)
}

// HandleWebhook verifies and processes one delivery. Signature failures are
// client errors; once verified, the delivery is acknowledged with 200
// regardless of whether the local update succeeded, so the provider never
// retries.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// The raw body must reach signature verification untouched.
	if err := h.paymentService.HandleWebhookEvent(c.Body(), c.Get(SignatureHeader)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"received": true,
	})
}
