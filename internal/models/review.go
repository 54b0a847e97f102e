package models

import "gorm.io/gorm"

// Review is a rating left by a user for a product they have received.
// A user may review a given product at most once.
type Review struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Review    string  `json:"review" gorm:"type:varchar(1000)" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=5"`
	ProductID string  `json:"productId" gorm:"type:varchar(36);uniqueIndex:idx_reviews_product_user" validate:"required"`
	UserID    string  `json:"userId" gorm:"type:varchar(36);uniqueIndex:idx_reviews_product_user"`

	gorm.Model
}
