package models

import (
	"time"
)

// Product stock status values.
const (
	ProductStatusInStock    = "InStock"
	ProductStatusOutOfStock = "OutOfStock"
)

// Product is a catalog item owned by one admin (seller).
//
// ProductPrice is a cached projection: it must always equal the price derived
// from PreviousPrice, Discount and FlatOfferDiscount, and is recomputed by the
// offer engine whenever any of those inputs changes. FlatOfferDiscount is the
// percentage of the admin's currently applied promotional offer (0 when none).
type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AdminID           uint      `gorm:"not null;index" json:"adminId"`
	Title             string    `gorm:"not null" json:"title"`
	ImageURL          string    `json:"imageUrl"`
	ImageKey          string    `json:"imageKey"`
	Description       string    `json:"description"`
	Status            string    `gorm:"not null;default:'InStock'" json:"status"`
	PreviousPrice     float64   `gorm:"not null" json:"previousPrice"`
	ProductPrice      float64   `gorm:"not null" json:"productPrice"`
	ProductCost       float64   `gorm:"not null" json:"productCost"`
	Discount          float64   `gorm:"not null" json:"discount"`
	FlatOfferDiscount float64   `gorm:"not null;default:0" json:"flatOfferDiscount"`
	Category          string    `gorm:"index" json:"category"`
	Tags              []string  `gorm:"serializer:json" json:"tags"`
	Quantity          int       `gorm:"not null" json:"productquantity"`
	CreatedAt         time.Time `json:"addedAt"`
	UpdatedAt         time.Time `json:"-"`
}
