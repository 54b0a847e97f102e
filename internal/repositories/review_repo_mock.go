package repositories

import (
	"fmt"
	"sync"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// Create adds a new review, enforcing the (product, user) uniqueness the
// database index provides in the GORM implementation.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return fmt.Errorf("review for product %s by user %s: %w",
				review.ProductID, review.UserID, ErrDuplicate)
		}
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews[review.ID] = *review
	return nil
}

// GetByProductID returns all reviews for a product.
func (r *MockReviewRepository) GetByProductID(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.Review, 0)
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			reviewList = append(reviewList, rv)
		}
	}
	return reviewList, nil
}

// ExistsForProductAndUser reports whether the user already reviewed the
// product.
func (r *MockReviewRepository) ExistsForProductAndUser(productID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
