package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultRatingsAverage is the baseline a product falls back to when it has
// no reviews.
const DefaultRatingsAverage = 4.5

// Product represents a product in the store catalog.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string         `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string         `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	Stock       int            `json:"stock" validate:"gte=0"`
	SKU         string         `json:"sku" gorm:"uniqueIndex;type:varchar(64)" validate:"required"`
	Image       string         `json:"image" gorm:"type:varchar(512)"`
	Images      datatypes.JSON `json:"images,omitempty"` // Optional gallery
	IsActive    bool           `json:"isActive" gorm:"default:true"`

	RatingsAverage  float64 `json:"ratingsAverage" gorm:"default:4.5"`
	RatingsQuantity int     `json:"ratingsQuantity" gorm:"default:0"`

	gorm.Model
}
