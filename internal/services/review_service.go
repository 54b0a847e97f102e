package services

import (
	"errors"
	"log"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
)

// ReviewService handles business logic for product reviews: creation is
// gated on a delivered purchase, and each write recomputes the product's
// rating aggregate.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// CreateReview creates a review for a product the user has actually
// received: there must be a delivered order by this user containing the
// product, and at most one review per (product, user) pair.
func (s *ReviewService) CreateReview(userID, productID string, rating float64, text string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	purchased, err := s.orderRepo.HasDeliveredOrderWithProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, apperr.Forbidden("you can only review products that have been delivered to you")
	}

	exists, err := s.reviewRepo.ExistsForProductAndUser(productID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("you have already reviewed this product")
	}

	review := &models.Review{
		Review:    text,
		Rating:    rating,
		ProductID: productID,
		UserID:    userID,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("you have already reviewed this product")
		}
		return nil, err
	}

	// Explicit recompute after a successful write, rather than a hidden
	// database trigger. The review stands even if the aggregate update
	// fails; the next write corrects it.
	if err := s.recalcAverageRatings(productID); err != nil {
		log.Printf("Warning: failed to recompute ratings for product %s: %v", productID, err)
	}

	return review, nil
}

// GetReviewsForProduct returns all reviews of a product.
func (s *ReviewService) GetReviewsForProduct(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProductID(productID)
}

// recalcAverageRatings recomputes ratingsAverage and ratingsQuantity over
// all reviews of the product. With no reviews left, the product falls back
// to the fixed baseline.
func (s *ReviewService) recalcAverageRatings(productID string) error {
	reviews, err := s.reviewRepo.GetByProductID(productID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return s.productRepo.UpdateRatings(productID, models.DefaultRatingsAverage, 0)
	}

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	average := sum / float64(len(reviews))
	return s.productRepo.UpdateRatings(productID, average, len(reviews))
}
