package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the store.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name     string `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)"` // Never serialized
	Role     string `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user admin"`

	// Password-reset state. Only the SHA-256 hash of the token is stored;
	// the plain token travels in the reset email.
	PasswordResetToken   string     `json:"-" gorm:"type:varchar(64)"`
	PasswordResetExpires *time.Time `json:"-"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
