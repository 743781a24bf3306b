package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// ProductController serves the customer-facing catalogue and seller product
// management.
type ProductController struct {
	db *gorm.DB
}

// NewProductController creates a ProductController backed by the given
// database.
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{db: db}
}

// AddProductRequest is the payload for adding a product to the catalogue.
type AddProductRequest struct {
	AdminID       uint     `json:"adminId" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	ImageURL      string   `json:"imageUrl"`
	ImageKey      string   `json:"imageKey"`
	Description   string   `json:"description"`
	PreviousPrice float64  `json:"previousPrice" binding:"required"`
	ProductCost   float64  `json:"productCost"`
	Discount      float64  `json:"discount"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Quantity      int      `json:"productquantity"`
}

// UpdateQuantityRequest adjusts stock after a sale or restock.
type UpdateQuantityRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// storefrontProduct is a catalogue row decorated with the viewer's cart and
// wishlist state plus the average review rating.
type storefrontProduct struct {
	models.Product
	CartQuantity  int     `json:"cartQuantity"`
	InWishlist    bool    `json:"inWishlist"`
	AverageRating float64 `json:"averageRating"`
}

// GetProducts lists in-stock products for the storefront. When the caller is
// signed in, each row carries their cart quantity, wishlist membership and
// the product's average rating.
func (pc *ProductController) GetProducts(c *gin.Context) {
	var userID uint
	if value, exists := c.Get("user"); exists {
		if user, ok := value.(models.User); ok {
			userID = user.ID
		}
	}

	pagination := utils.GetPagination(c)

	query := `
		SELECT p.*,
		       COALESCE(ci.quantity, 0)   AS cart_quantity,
		       CASE WHEN wi.product_id IS NULL THEN 0 ELSE 1 END AS in_wishlist,
		       COALESCE(r.avg_rating, 0)  AS average_rating
		FROM products p
		LEFT JOIN cart_items ci
		       ON ci.product_id = p.id AND ci.user_id = ?
		LEFT JOIN wishlist_items wi
		       ON wi.product_id = p.id AND wi.user_id = ?
		LEFT JOIN (
			SELECT rp.product_id, AVG(rv.rating) AS avg_rating
			FROM review_products rp
			JOIN reviews rv ON rv.id = rp.review_id
			GROUP BY rp.product_id
		) r ON r.product_id = p.id
		WHERE p.status = ?
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`

	var products []storefrontProduct
	if err := pc.db.Raw(query, userID, userID, models.ProductStatusInStock,
		pagination.Limit, pagination.Offset()).Scan(&products).Error; err != nil {
		utils.LogError("GetProducts failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.Success(c, "Products fetched successfully", products)
}

// AddProduct adds a product to a seller's catalogue. The selling price
// starts at the list price reduced by the product's own discount; if the
// seller has a live offer it is applied on top.
func (pc *ProductController) AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if req.PreviousPrice <= 0 {
		utils.ValidationError(c, "Price must be positive", nil)
		return
	}
	if req.Discount < 0 || req.Discount >= 100 {
		utils.ValidationError(c, "Discount must be between 0 and 100", nil)
		return
	}

	product := models.Product{
		AdminID:       req.AdminID,
		Title:         req.Title,
		ImageURL:      req.ImageURL,
		ImageKey:      req.ImageKey,
		Description:   req.Description,
		Status:        models.ProductStatusInStock,
		PreviousPrice: req.PreviousPrice,
		ProductCost:   req.ProductCost,
		Discount:      req.Discount,
		Category:      req.Category,
		Tags:          req.Tags,
		Quantity:      req.Quantity,
	}
	product.ProductPrice = utils.BaselinePrice(&product)

	err := utils.RunInTransaction(pc.db, func(tx *gorm.DB) error {
		var offer models.Offer
		if err := tx.Where("admin_id = ? AND active = ?", req.AdminID, true).
			Order("created_at DESC").First(&offer).Error; err == nil {
			product.ProductPrice = product.PreviousPrice - product.PreviousPrice*offer.Discount/100
			product.FlatOfferDiscount = offer.Discount
		}
		if err := tx.Create(&product).Error; err != nil {
			return utils.StoreError("Failed to add product", err)
		}
		return nil
	})
	if err != nil {
		utils.LogError("AddProduct failed for admin %d: %v", req.AdminID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Product %d added for admin %d", product.ID, req.AdminID)
	utils.Created(c, "Product added successfully", gin.H{"product": product})
}

// UpdateQuantity adjusts a product's stock level. The stock change and the
// InStock/OutOfStock flip commit together.
func (pc *ProductController) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var product models.Product
	err := utils.RunInTransaction(pc.db, func(tx *gorm.DB) error {
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			return utils.NotFoundError("Product not found", nil)
		}

		newQuantity := product.Quantity + req.Quantity
		if newQuantity < 0 {
			return utils.ConflictError("Not enough stock", nil)
		}
		status := models.ProductStatusInStock
		if newQuantity == 0 {
			status = models.ProductStatusOutOfStock
		}
		if err := tx.Model(&product).Updates(map[string]interface{}{
			"quantity": newQuantity,
			"status":   status,
		}).Error; err != nil {
			return utils.StoreError("Failed to update quantity", err)
		}
		product.Quantity = newQuantity
		product.Status = status
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, "Quantity updated successfully", gin.H{"product": product})
}
