package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
	OrderStatusDelivered = "delivered"
)

// Payment methods.
const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

// ValidOrderStatuses enumerates every status an order may hold.
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPaid:      true,
	OrderStatusShipped:   true,
	OrderStatusCancelled: true,
	OrderStatusDelivered: true,
}

// OrderItem is a line in an order. Name, price and image are snapshotted
// from the product at checkout time, so later catalog edits never alter
// historical orders.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"type:varchar(36)"`
	Name      string  `json:"name" gorm:"type:varchar(100)"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image" gorm:"type:varchar(512)"`
}

// Order is an immutable snapshot of a cart at checkout time, tracked through
// a payment/fulfillment status.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string      `json:"userId" gorm:"index;type:varchar(36)"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice    float64     `json:"totalPrice"`
	Status        string      `json:"status" gorm:"type:varchar(20);default:pending"`
	Address       string      `json:"address" gorm:"type:varchar(255)"`
	PaymentMethod string      `json:"paymentMethod" gorm:"type:varchar(20);default:cash"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
