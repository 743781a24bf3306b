package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// WishlistController handles the signed-in user's wishlist.
type WishlistController struct {
	db *gorm.DB
}

// NewWishlistController creates a WishlistController backed by the given
// database.
func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{db: db}
}

// AddToWishlistRequest is the payload for saving a product.
type AddToWishlistRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// GetWishlist lists the user's saved products with full product details.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var products []models.Product
	query := `
		SELECT p.*
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = ?
		ORDER BY wi.created_at DESC`
	if err := wc.db.Raw(query, user.ID).Scan(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch wishlist", err.Error())
		return
	}
	utils.Success(c, "Wishlist fetched successfully", products)
}

// AddToWishlist saves a product. Saving the same product twice is a no-op.
func (wc *WishlistController) AddToWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var product models.Product
	if err := wc.db.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var existing models.WishlistItem
	err := wc.db.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&existing).Error
	if err == nil {
		utils.Success(c, "Product already in wishlist", nil)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Failed to check wishlist", err.Error())
		return
	}

	item := models.WishlistItem{UserID: user.ID, ProductID: req.ProductID}
	if err := wc.db.Create(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to add to wishlist", err.Error())
		return
	}
	utils.Success(c, "Product added to wishlist", nil)
}

// DeleteFromWishlist removes a single product from the wishlist.
func (wc *WishlistController) DeleteFromWishlist(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := utils.ParseID(c.Query("productId"), "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result := wc.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to remove from wishlist", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Wishlist item not found")
		return
	}
	utils.Success(c, "Product removed from wishlist", nil)
}

// RemoveAll empties the user's wishlist.
func (wc *WishlistController) RemoveAll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	if err := wc.db.Where("user_id = ?", user.ID).Delete(&models.WishlistItem{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to empty wishlist", err.Error())
		return
	}
	utils.Success(c, "Wishlist emptied successfully", nil)
}
