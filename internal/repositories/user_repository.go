package repositories

import "github.com/KhuramMirza/e-commerce-backend-api/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByResetTokenHash(tokenHash string) (*models.User, error)
	Update(user *models.User) error
}
