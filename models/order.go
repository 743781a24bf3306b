package models

import (
	"time"
)

// Delivery status values carried on an order.
const (
	DeliveryStatusPlaced    = 1
	DeliveryStatusShipped   = 2
	DeliveryStatusDelivered = 3
)

// Payment status values.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Order is an immutable snapshot of a checkout. OrderNumber is the externally
// visible identifier: a 5-digit numeric string in the common case, or a UUID
// when the random draws keep colliding.
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"userId"`
	OrderNumber    string      `gorm:"uniqueIndex;not null" json:"orderId"`
	ShippingPrice  float64     `gorm:"not null" json:"shippingPrice"`
	Subtotal       float64     `gorm:"not null" json:"subtotal"`
	TotalPrice     float64     `gorm:"not null" json:"totalPrice"`
	PaymentStatus  string      `gorm:"not null" json:"paymentStatus"`
	DeliveryStatus int         `gorm:"not null;default:1" json:"deliveryStatus"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"productInfo"`
	CreatedAt      time.Time   `json:"orderAt"`
	UpdatedAt      time.Time   `json:"-"`
}

// OrderItem snapshots one product line at purchase time.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	OrderID      uint    `gorm:"not null;index" json:"-"`
	ProductID    uint    `gorm:"not null;index" json:"productID"`
	ProductTitle string  `gorm:"not null" json:"productTitle"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	ProductPrice float64 `gorm:"not null" json:"productPrice"`
}

// BillingAddress stores the billing details captured with an order.
type BillingAddress struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"uniqueIndex;not null" json:"orderId"`
	UserID          uint      `gorm:"not null;index" json:"userId"`
	FirstName       string    `gorm:"not null" json:"firstName"`
	LastName        string    `gorm:"not null" json:"lastName"`
	Country         string    `gorm:"not null" json:"country"`
	City            string    `gorm:"not null" json:"city"`
	Address         string    `gorm:"not null" json:"address"`
	OptionalAddress string    `json:"optionalAddress,omitempty"`
	PhoneNo         string    `gorm:"not null" json:"phoneNo"`
	Email           string    `gorm:"not null" json:"email"`
	OptionalNote    string    `json:"optionalNote,omitempty"`
	CardNo          string    `json:"-"`
	CVC             string    `json:"-"`
	ExpiryDate      string    `json:"-"`
	PostalCode      string    `gorm:"not null" json:"postalCode"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}
