package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// CheckoutController turns carts into orders and records reviews.
type CheckoutController struct {
	db *gorm.DB
}

// NewCheckoutController creates a CheckoutController backed by the given
// database.
func NewCheckoutController(db *gorm.DB) *CheckoutController {
	return &CheckoutController{db: db}
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	ShippingPrice float64               `json:"shippingPrice"`
	Billing       BillingAddressRequest `json:"billing" binding:"required"`
}

// BillingAddressRequest carries the buyer's billing details.
type BillingAddressRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName"`
	Country         string `json:"country" binding:"required"`
	City            string `json:"city"`
	Address         string `json:"address" binding:"required"`
	OptionalAddress string `json:"optionalAddress"`
	PhoneNo         string `json:"phoneNo"`
	Email           string `json:"email" binding:"required"`
	OptionalNote    string `json:"optionalNote"`
	CardNo          string `json:"cardNo"`
	CVC             string `json:"cvc"`
	ExpiryDate      string `json:"expiryDate"`
	PostalCode      string `json:"postalCode"`
}

// AddReviewRequest is the payload for reviewing ordered products.
type AddReviewRequest struct {
	Rating     int    `json:"rating" binding:"required"`
	Review     string `json:"review"`
	ProductIDs []uint `json:"productIds" binding:"required"`
}

// PlaceOrder converts the user's cart into an order. Order-number
// allocation, the order and its items, the stock decrement, the billing
// address and the cart wipe all commit in one transaction; the confirmation
// email goes out afterwards and never blocks the response.
func (cc *CheckoutController) PlaceOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Billing.Email); err != nil {
		utils.RespondError(c, err)
		return
	}

	var order models.Order
	err := utils.RunInTransaction(cc.db, func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("user_id = ?", user.ID).Find(&cart).Error; err != nil {
			return utils.StoreError("Failed to load cart", err)
		}
		if len(cart) == 0 {
			return utils.BadRequestError("Cart is empty", nil)
		}

		orderNumber, err := utils.GenerateOrderNumber(tx)
		if err != nil {
			return err
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(cart))
		for _, line := range cart {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return utils.StoreError("Failed to load product", err)
			}
			if product.Quantity < line.Quantity {
				return utils.ConflictError("Not enough stock for "+product.Title, nil)
			}

			newQuantity := product.Quantity - line.Quantity
			status := models.ProductStatusInStock
			if newQuantity == 0 {
				status = models.ProductStatusOutOfStock
			}
			if err := tx.Model(&product).Updates(map[string]interface{}{
				"quantity": newQuantity,
				"status":   status,
			}).Error; err != nil {
				return utils.StoreError("Failed to update stock", err)
			}

			items = append(items, models.OrderItem{
				ProductID:    product.ID,
				ProductTitle: product.Title,
				Quantity:     line.Quantity,
				ProductPrice: product.ProductPrice,
			})
			subtotal += product.ProductPrice * float64(line.Quantity)
		}

		order = models.Order{
			UserID:         user.ID,
			OrderNumber:    orderNumber,
			ShippingPrice:  req.ShippingPrice,
			Subtotal:       subtotal,
			TotalPrice:     subtotal + req.ShippingPrice,
			PaymentStatus:  models.PaymentStatusPending,
			DeliveryStatus: models.DeliveryStatusPlaced,
			Items:          items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return utils.StoreError("Failed to create order", err)
		}

		billing := models.BillingAddress{
			OrderID:         order.ID,
			UserID:          user.ID,
			FirstName:       req.Billing.FirstName,
			LastName:        req.Billing.LastName,
			Country:         req.Billing.Country,
			City:            req.Billing.City,
			Address:         req.Billing.Address,
			OptionalAddress: req.Billing.OptionalAddress,
			PhoneNo:         req.Billing.PhoneNo,
			Email:           req.Billing.Email,
			OptionalNote:    req.Billing.OptionalNote,
			CardNo:          req.Billing.CardNo,
			CVC:             req.Billing.CVC,
			ExpiryDate:      req.Billing.ExpiryDate,
			PostalCode:      req.Billing.PostalCode,
		}
		if err := tx.Create(&billing).Error; err != nil {
			return utils.StoreError("Failed to save billing address", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return utils.StoreError("Failed to clear cart", err)
		}
		return nil
	})
	if err != nil {
		utils.LogError("PlaceOrder failed for user %d: %v", user.ID, err)
		utils.RespondError(c, err)
		return
	}

	go func(email, name string, order models.Order) {
		_ = utils.SendOrderConfirmation(email, name, &order)
	}(req.Billing.Email, req.Billing.FirstName, order)

	utils.LogInfo("Order %s placed by user %d (total %.2f)", order.OrderNumber, user.ID, order.TotalPrice)
	utils.Created(c, "Order placed successfully", gin.H{"order": order})
}

// GetOrders lists the user's past orders with their items.
func (cc *CheckoutController) GetOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var orders []models.Order
	if err := cc.db.Preload("Items").Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}
	var billing []models.BillingAddress
	if err := cc.db.Where("user_id = ?", user.ID).Find(&billing).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch billing details", err.Error())
		return
	}
	utils.Success(c, "Orders fetched successfully", gin.H{
		"orders":  orders,
		"billing": billing,
	})
}

// AddReview records a rating and comment against ordered products.
func (cc *CheckoutController) AddReview(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.ValidationError(c, "Rating must be between 1 and 5", nil)
		return
	}
	if len(req.ProductIDs) == 0 {
		utils.ValidationError(c, "At least one product is required", nil)
		return
	}

	review := models.Review{
		CustomerID: user.ID,
		Rating:     req.Rating,
		Review:     req.Review,
	}
	for _, productID := range req.ProductIDs {
		review.Products = append(review.Products, models.ReviewProduct{ProductID: productID})
	}

	if err := cc.db.Create(&review).Error; err != nil {
		utils.LogError("AddReview failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save review", err.Error())
		return
	}
	utils.Created(c, "Review added successfully", gin.H{"review": review})
}
