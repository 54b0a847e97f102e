package repositories

import "github.com/KhuramMirza/e-commerce-backend-api/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAllActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// DecrementStock subtracts quantity from the product's stock in a single
	// UPDATE. Decrements across multiple products are independent statements
	// with no shared transaction.
	DecrementStock(id string, quantity int) error
	// UpdateRatings overwrites the product's review aggregate.
	UpdateRatings(id string, average float64, quantity int) error
}
