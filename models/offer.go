package models

import (
	"time"
)

// Offer is a time-bounded percentage discount covering an admin's whole
// catalog. Active starts true and is cleared by the expiry sweep, so a
// processed offer is never picked up twice; expired offers are kept for
// history rather than deleted.
type Offer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AdminID     uint      `gorm:"not null;index" json:"adminId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Discount    float64   `gorm:"not null" json:"discount"`
	FromDate    time.Time `gorm:"not null" json:"fromDate"`
	ToDate      time.Time `gorm:"not null" json:"toDate"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"addedAt"`
	UpdatedAt   time.Time `json:"-"`
}
