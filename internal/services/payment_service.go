package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/pkg/checkout"
)

// SessionCreator is the gateway surface PaymentService needs, satisfied by
// *checkout.Client and by mocks in tests.
type SessionCreator interface {
	CreateSession(req checkout.SessionRequest) (*checkout.Session, error)
}

// PaymentService creates hosted checkout sessions for orders and processes
// the provider's webhook deliveries.
type PaymentService struct {
	gateway       SessionCreator
	orderRepo     repositories.OrderRepository
	userRepo      repositories.UserRepository
	webhookSecret string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway SessionCreator, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, webhookSecret string) *PaymentService {
	return &PaymentService{
		gateway:       gateway,
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession builds a hosted-payment session for the order and
// returns the redirect URL. The order ID rides along as the session's
// client reference so the webhook can correlate the payment back to us, and
// the buyer's email prefills the provider's receipt field.
func (s *PaymentService) CreateCheckoutSession(orderID, userID string) (string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", apperr.NotFound("order not found")
		}
		return "", err
	}
	if order.UserID != userID {
		return "", apperr.Forbidden("you can only pay for your own orders")
	}

	email := ""
	if order.User != nil {
		email = order.User.Email
	} else if user, err := s.userRepo.GetByID(order.UserID); err == nil {
		email = user.Email
	}

	lineItems := make([]checkout.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineItems = append(lineItems, checkout.LineItem{
			Name:       item.Name,
			Image:      item.Image,
			UnitAmount: checkout.MinorUnits(item.Price),
			Currency:   "usd",
			Quantity:   item.Quantity,
		})
	}

	session, err := s.gateway.CreateSession(checkout.SessionRequest{
		Mode:               "payment",
		PaymentMethodTypes: []string{"card"},
		ClientReferenceID:  order.ID,
		CustomerEmail:      email,
		LineItems:          lineItems,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session for order %s: %w", order.ID, err)
	}
	return session.URL, nil
}

// HandleWebhookEvent verifies and processes one webhook delivery. An
// invalid signature rejects the delivery before anything is touched. After
// verification the delivery is always accepted: a failed local update is
// logged, never surfaced, so the provider does not retry. Replays of a
// completed event are harmless since re-marking an order paid is a no-op.
func (s *PaymentService) HandleWebhookEvent(payload []byte, signatureHeader string) error {
	event, err := checkout.ConstructEvent(payload, signatureHeader, s.webhookSecret)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidSignature) {
			return apperr.BadRequest("webhook signature verification failed")
		}
		return apperr.Wrap(http.StatusBadRequest, "invalid webhook payload", err)
	}

	if event.Type != checkout.EventCheckoutCompleted {
		return nil
	}

	orderID := event.Data.Object.ClientReferenceID
	if orderID == "" {
		log.Printf("Webhook %s event without client reference, ignoring", event.Type)
		return nil
	}

	if err := s.orderRepo.UpdatePayment(orderID, models.OrderStatusPaid, models.PaymentMethodCard); err != nil {
		log.Printf("Error marking order %s as paid from webhook: %v", orderID, err)
		return nil
	}
	log.Printf("Order %s has been marked as paid", orderID)
	return nil
}
