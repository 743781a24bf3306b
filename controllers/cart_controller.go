package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// CartController handles the signed-in user's shopping cart.
type CartController struct {
	db *gorm.DB
}

// NewCartController creates a CartController backed by the given database.
func NewCartController(db *gorm.DB) *CartController {
	return &CartController{db: db}
}

// AddToCartRequest is the payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// AddAllToCartRequest moves a batch of products (typically the wishlist)
// into the cart.
type AddAllToCartRequest struct {
	ProductIDs []uint `json:"productIds" binding:"required"`
}

// UpdateCartRequest changes the quantity of a cart line.
type UpdateCartRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// cartLine joins a cart entry with its product details and line total.
type cartLine struct {
	models.Product
	CartQuantity int     `json:"cartQuantity"`
	LineTotal    float64 `json:"lineTotal"`
}

func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// GetCart lists the user's cart with product details and line totals.
func (cc *CartController) GetCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	query := `
		SELECT p.*, ci.quantity AS cart_quantity,
		       p.product_price * ci.quantity AS line_total
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at DESC`

	var lines []cartLine
	if err := cc.db.Raw(query, user.ID).Scan(&lines).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch cart", err.Error())
		return
	}
	utils.Success(c, "Cart fetched successfully", lines)
}

// AddToCart adds a product to the cart, bumping the quantity if the line
// already exists.
func (cc *CartController) AddToCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	err := cc.addLine(cc.db, user.ID, req.ProductID, req.Quantity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Product added to cart", nil)
}

// AddAllToCart moves a batch of products into the cart in one transaction.
func (cc *CartController) AddAllToCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req AddAllToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	err := utils.RunInTransaction(cc.db, func(tx *gorm.DB) error {
		for _, productID := range req.ProductIDs {
			if err := cc.addLine(tx, user.ID, productID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Products added to cart", nil)
}

func (cc *CartController) addLine(db *gorm.DB, userID, productID uint, quantity int) error {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundError("Product not found", nil)
		}
		return utils.StoreError("Failed to load product", err)
	}
	if product.Status != models.ProductStatusInStock {
		return utils.ConflictError("Product is out of stock", nil)
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		return db.Model(&item).Update("quantity", item.Quantity+quantity).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.StoreError("Failed to check cart", err)
	}
	item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := db.Create(&item).Error; err != nil {
		return utils.StoreError("Failed to add to cart", err)
	}
	return nil
}

// UpdateCart sets a cart line's quantity; zero or less removes the line.
func (cc *CartController) UpdateCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	if req.Quantity <= 0 {
		if err := cc.db.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
			Delete(&models.CartItem{}).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
		utils.Success(c, "Product removed from cart", nil)
		return
	}

	result := cc.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update cart", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}
	utils.Success(c, "Cart updated successfully", nil)
}

// DeleteFromCart removes a single product from the cart.
func (cc *CartController) DeleteFromCart(c *gin.Context) {
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

	result := cc.db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to remove from cart", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Cart item not found")
		return
	}
	utils.Success(c, "Product removed from cart", nil)
}

// GetSubtotal returns the cart's subtotal at current selling prices.
func (cc *CartController) GetSubtotal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var subtotal float64
	query := `
		SELECT COALESCE(SUM(p.product_price * ci.quantity), 0)
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?`
	if err := cc.db.Raw(query, user.ID).Scan(&subtotal).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute subtotal", err.Error())
		return
	}
	utils.Success(c, "Subtotal computed successfully", gin.H{"subtotal": subtotal})
}

// RemoveAll empties the user's cart.
func (cc *CartController) RemoveAll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	if err := cc.db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to empty cart", err.Error())
		return
	}
	utils.Success(c, "Cart emptied successfully", nil)
}
