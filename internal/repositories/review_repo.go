package repositories

import "github.com/KhuramMirza/e-commerce-backend-api/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// Create inserts the review. A duplicate (product, user) pair fails the
	// unique index and surfaces as an error.
	Create(review *models.Review) error
	GetByProductID(productID string) ([]models.Review, error)
	ExistsForProductAndUser(productID, userID string) (bool, error)
}
