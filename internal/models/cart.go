package models

import "gorm.io/gorm"

// CartItem is a single pending purchase line in a user's cart. The price is
// never stored here: totals are recomputed from current product prices on
// every mutation.
type CartItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	CartID    string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"productId" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Cart is the per-user mutable collection of pending purchase line items.
// It is created lazily on the first add and cleared, not deleted, when an
// order is placed.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalPrice float64    `json:"totalPrice"`

	gorm.Model
}
