package models

import (
	"time"
)

// Review is a customer rating left against an order; it fans out to every
// product of that order through ReviewProduct rows.
type Review struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"not null;index" json:"customerId"`
	Rating     int             `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review     string          `gorm:"not null" json:"review"`
	Products   []ReviewProduct `gorm:"foreignKey:ReviewID" json:"productIds"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ReviewProduct ties a review to a single reviewed product.
type ReviewProduct struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	ReviewID  uint `gorm:"not null;index" json:"-"`
	ProductID uint `gorm:"not null;index" json:"productId"`
}
