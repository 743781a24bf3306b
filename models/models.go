package models

import (
	"time"
)

// User status values. Admins are regular users flagged with StatusAdmin and
// linked to an AdminProfile row.
const (
	StatusCustomer = 0
	StatusAdmin    = 1
)

// User represents a registered account, customer or admin.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	CountryCode string    `json:"countryCode"`
	ContactNo   string    `json:"contactNo"`
	CountryName string    `json:"countryName"`
	Status      int       `gorm:"not null;default:0" json:"status"`
	GoogleID    string    `gorm:"default:null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`
}

// AdminProfile holds the seller details attached to an admin user.
type AdminProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"adminId"`
	Brand         string    `json:"brand"`
	DOB           string    `json:"dob"`
	City          string    `json:"city"`
	PostalAddress string    `json:"postalAddress"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}
