package repositories

import "github.com/KhuramMirza/e-commerce-backend-api/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// GetAll returns every order newest-first with the owning user resolved.
	GetAll() ([]models.Order, error)
	// GetByUserID returns the user's orders newest-first.
	GetByUserID(userID string) ([]models.Order, error)
	UpdateStatus(id string, status string) error
	// UpdatePayment sets status and payment method together, used by the
	// payment webhook.
	UpdatePayment(id string, status string, paymentMethod string) error
	// HasDeliveredOrderWithProduct reports whether the user has a delivered
	// order containing the product.
	HasDeliveredOrderWithProduct(userID string, productID string) (bool, error)
}
