package services

import (
	"errors"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/apperr"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"
	"github.com/KhuramMirza/e-commerce-backend-api/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all active products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAllActive()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct creates a new catalog entry. New products start active with
// the baseline rating until the first review lands.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price <= 0 {
		return apperr.BadRequest("price must be greater than zero")
	}
	if product.Stock < 0 {
		return apperr.BadRequest("stock cannot be negative")
	}
	product.IsActive = true
	product.RatingsAverage = models.DefaultRatingsAverage
	product.RatingsQuantity = 0
	return s.repo.Create(product)
}
