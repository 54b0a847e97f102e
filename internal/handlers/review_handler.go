package handlers

import (
	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/middleware"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes, nested under products.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Post("/products/:productId/reviews", authRequired, h.HandleCreateReview)
	router.Get("/products/:productId/reviews", h.HandleGetReviews)
}

// CreateReviewRequest represents the request body for creating a review.
type CreateReviewRequest struct {
	Review string  `json:"review" validate:"required,max=1000"`
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

// HandleCreateReview creates a review for a delivered product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	review, err := h.service.CreateReview(middleware.UserID(c), c.Params("productId"), req.Rating, req.Review)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    review,
	})
}

// HandleGetReviews lists all reviews of a product.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetReviewsForProduct(c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}
