package repositories

import (
	"errors"
	"fmt"

	"github.com/KhuramMirza/e-commerce-backend-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the user's cart with items and their products
// resolved.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product").First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// Create creates a new cart for a user.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// Save replaces the cart's item rows with its current item set and persists
// the new total.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Items removed from the slice must also be removed from the table,
		// so the row set is rebuilt rather than upserted.
		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			// Product is a read-side association; writing it back would upsert
			// catalog rows from the cart.
			if err := tx.Omit("Product").Create(&cart.Items).Error; err != nil {
				return fmt.Errorf("failed to save cart items: %w", err)
			}
		}
		res := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			UpdateColumn("total_price", cart.TotalPrice)
		if res.Error != nil {
			return fmt.Errorf("failed to save cart total: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("cart with ID %s for save: %w", cart.ID, ErrNotFound)
		}
		return nil
	})
}
