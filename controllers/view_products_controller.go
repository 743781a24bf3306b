package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// ViewProductsController serves the seller-side product management screens.
type ViewProductsController struct {
	db *gorm.DB
}

// NewViewProductsController creates a ViewProductsController backed by the
// given database.
func NewViewProductsController(db *gorm.DB) *ViewProductsController {
	return &ViewProductsController{db: db}
}

// UpdateProductRequest is the payload for editing a product.
type UpdateProductRequest struct {
	ProductID     uint     `json:"productId" binding:"required"`
	Title         string   `json:"title"`
	ImageURL      string   `json:"imageUrl"`
	Description   string   `json:"description"`
	PreviousPrice float64  `json:"previousPrice"`
	ProductCost   float64  `json:"productCost"`
	Discount      float64  `json:"discount"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Quantity      int      `json:"productquantity"`
}

// GetProducts lists a seller's own products, newest first.
func (vc *ViewProductsController) GetProducts(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	pagination := utils.GetPagination(c)
	var products []models.Product
	if err := vc.db.Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset()).
		Find(&products).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}
	utils.Success(c, "Products fetched successfully", products)
}

// CheckPendingProduct reports whether the seller has products that are out
// of stock and need restocking.
func (vc *ViewProductsController) CheckPendingProduct(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var pending []models.Product
	if err := vc.db.Where("admin_id = ? AND status = ?", adminID, models.ProductStatusOutOfStock).
		Find(&pending).Error; err != nil {
		utils.InternalServerError(c, "Failed to check products", err.Error())
		return
	}
	utils.Success(c, "Pending products fetched", gin.H{
		"count":    len(pending),
		"products": pending,
	})
}

// UpdateProduct edits a product's details. When the list price or discount
// changes the selling price is recomputed, keeping any live offer applied.
func (vc *ViewProductsController) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var product models.Product
	err := utils.RunInTransaction(vc.db, func(tx *gorm.DB) error {
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Product not found", nil)
			}
			return utils.StoreError("Failed to load product", err)
		}

		if req.Title != "" {
			product.Title = req.Title
		}
		if req.ImageURL != "" {
			product.ImageURL = req.ImageURL
		}
		if req.Description != "" {
			product.Description = req.Description
		}
		if req.Category != "" {
			product.Category = req.Category
		}
		if req.Tags != nil {
			product.Tags = req.Tags
		}
		if req.Quantity > 0 {
			product.Quantity = req.Quantity
			product.Status = models.ProductStatusInStock
		}
		if req.ProductCost > 0 {
			product.ProductCost = req.ProductCost
		}

		if req.PreviousPrice > 0 || req.Discount > 0 {
			if req.PreviousPrice > 0 {
				product.PreviousPrice = req.PreviousPrice
			}
			if req.Discount > 0 {
				if req.Discount >= 100 {
					return utils.ValidationFailedError("Discount must be between 0 and 100", nil)
				}
				product.Discount = req.Discount
			}
			if product.FlatOfferDiscount > 0 {
				product.ProductPrice = product.PreviousPrice - product.PreviousPrice*product.FlatOfferDiscount/100
			} else {
				product.ProductPrice = utils.BaselinePrice(&product)
			}
		}

		if err := tx.Save(&product).Error; err != nil {
			return utils.StoreError("Failed to update product", err)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct removes a product and any cart or wishlist rows pointing at
// it, in one transaction.
func (vc *ViewProductsController) DeleteProduct(c *gin.Context) {
	productID, err := utils.ParseID(c.Query("productId"), "productId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	err = utils.RunInTransaction(vc.db, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Product not found", nil)
			}
			return utils.StoreError("Failed to load product", err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.CartItem{}).Error; err != nil {
			return utils.StoreError("Failed to remove cart entries", err)
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.WishlistItem{}).Error; err != nil {
			return utils.StoreError("Failed to remove wishlist entries", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return utils.StoreError("Failed to delete product", err)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Product %d deleted", productID)
	utils.Success(c, "Product deleted successfully", nil)
}
