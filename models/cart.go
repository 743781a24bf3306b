package models

import (
	"time"
)

// CartItem links one product to one user's cart.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"userId"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"productId"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"addedDate"`
	UpdatedAt time.Time `json:"-"`
}

// WishlistItem links one product to one user's wishlist.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"userId"`
	ProductID uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"productId"`
	CreatedAt time.Time `json:"addedDate"`
}
