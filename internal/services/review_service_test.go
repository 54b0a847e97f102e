package services_test

import (
	"testing"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	service     *services.ReviewService
	orderRepo   *repositories.MockOrderRepository
	productRepo *repositories.MockProductRepository
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	reviewRepo := repositories.NewMockReviewRepository()
	orderRepo := repositories.NewMockOrderRepository()
	productRepo := repositories.NewMockProductRepository()

	require.NoError(t, productRepo.Create(&models.Product{
		ID: "prod-a", Name: "Product A", Price: 10.0, Stock: 10, SKU: "SKU-A",
		IsActive: true, RatingsAverage: models.DefaultRatingsAverage,
	}))

	return &reviewFixture{
		service:     services.NewReviewService(reviewRepo, orderRepo, productRepo),
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// deliverOrder records a delivered order for the user containing the product,
// which is what entitles them to review it.
func (f *reviewFixture) deliverOrder(t *testing.T, userID, productID string) {
	t.Helper()
	require.NoError(t, f.orderRepo.Create(&models.Order{
		UserID: userID,
		Status: models.OrderStatusDelivered,
		Items:  []models.OrderItem{{ProductID: productID, Name: "Product A", Price: 10.0, Quantity: 1}},
	}))
}

func TestReviewService_CreateReview(t *testing.T) {
	f := newReviewFixture(t)
	f.deliverOrder(t, "user-1", "prod-a")

	review, err := f.service.CreateReview("user-1", "prod-a", 4, "Solid product.")
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 4.0, review.Rating)

	// The aggregate is recomputed from the actual reviews.
	product, err := f.productRepo.GetByID("prod-a")
	require.NoError(t, err)
	assert.Equal(t, 4.0, product.RatingsAverage)
	assert.Equal(t, 1, product.RatingsQuantity)
}

func TestReviewService_CreateReview_NotDelivered(t *testing.T) {
	f := newReviewFixture(t)

	// A pending order is not enough; only delivered ones count.
	require.NoError(t, f.orderRepo.Create(&models.Order{
		UserID: "user-1",
		Status: models.OrderStatusPending,
		Items:  []models.OrderItem{{ProductID: "prod-a", Quantity: 1}},
	}))

	_, err := f.service.CreateReview("user-1", "prod-a", 5, "Looks great!")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.StatusCode)
}

func TestReviewService_CreateReview_ProductNotFound(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateReview("user-1", "prod-missing", 5, "Ghost product.")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	f := newReviewFixture(t)
	f.deliverOrder(t, "user-1", "prod-a")

	_, err := f.service.CreateReview("user-1", "prod-a", 4, "First impression.")
	require.NoError(t, err)

	_, err = f.service.CreateReview("user-1", "prod-a", 5, "Changed my mind.")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestReviewService_RatingsAggregateAcrossUsers(t *testing.T) {
	f := newReviewFixture(t)
	f.deliverOrder(t, "user-1", "prod-a")
	f.deliverOrder(t, "user-2", "prod-a")
	f.deliverOrder(t, "user-3", "prod-a")

	for user, rating := range map[string]float64{"user-1": 5, "user-2": 4, "user-3": 3} {
		_, err := f.service.CreateReview(user, "prod-a", rating, "review by "+user)
		require.NoError(t, err)
	}

	product, err := f.productRepo.GetByID("prod-a")
	require.NoError(t, err)
	assert.Equal(t, 3, product.RatingsQuantity)
	assert.InDelta(t, 4.0, product.RatingsAverage, 1e-9)

	reviews, err := f.service.GetReviewsForProduct("prod-a")
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}
