package repositories

import "github.com/KhuramMirza/e-commerce-backend-api/internal/models"

// CartRepository defines the interface for cart data access. Each user has
// at most one cart.
type CartRepository interface {
	// GetByUserID returns the user's cart with items (and their products)
	// resolved, or a not-found error if the user has no cart yet.
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// Save persists the cart along with its current item set, replacing
	// items that were removed.
	Save(cart *models.Cart) error
}
