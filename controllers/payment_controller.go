package controllers

import (
	"os"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// PaymentController creates payment orders and records their outcome.
type PaymentController struct {
	db     *gorm.DB
	client *razorpay.Client
}

// NewPaymentController creates a PaymentController backed by the given
// database and the Razorpay credentials from the environment.
func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		db:     db,
		client: razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET")),
	}
}

// CreatePaymentRequest is the payload for starting a payment.
type CreatePaymentRequest struct {
	OrderNumber string  `json:"orderId" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
}

// ConfirmPaymentRequest records the gateway's outcome for an order.
type ConfirmPaymentRequest struct {
	OrderNumber string `json:"orderId" binding:"required"`
	PaymentID   string `json:"paymentId"`
	Success     bool   `json:"success"`
}

// CreatePayment opens a Razorpay order for the given amount. The amount must
// match the stored order total; clients never dictate what they pay.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var order models.Order
	if err := pc.db.Where("order_number = ?", req.OrderNumber).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}
	if order.PaymentStatus == models.PaymentStatusPaid {
		utils.Conflict(c, "Order is already paid", nil)
		return
	}
	if req.Amount != order.TotalPrice {
		utils.ValidationError(c, "Amount does not match order total", nil)
		return
	}

	// Razorpay amounts are in the smallest currency unit.
	data := map[string]interface{}{
		"amount":   int(order.TotalPrice * 100),
		"currency": "INR",
		"receipt":  order.OrderNumber,
	}
	body, err := pc.client.Order.Create(data, nil)
	if err != nil {
		utils.LogError("CreatePayment failed for order %s: %v", order.OrderNumber, err)
		utils.InternalServerError(c, "Failed to create payment", err.Error())
		return
	}

	utils.LogInfo("Payment order created for %s", order.OrderNumber)
	utils.Success(c, "Payment created successfully", gin.H{
		"paymentOrder": body,
		"key":          os.Getenv("RAZORPAY_KEY"),
	})
}

// ConfirmPayment records the gateway outcome against the order.
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var order models.Order
	if err := pc.db.Where("order_number = ?", req.OrderNumber).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	status := models.PaymentStatusFailed
	if req.Success {
		status = models.PaymentStatusPaid
	}
	if err := pc.db.Model(&order).Update("payment_status", status).Error; err != nil {
		utils.InternalServerError(c, "Failed to update payment status", err.Error())
		return
	}

	utils.LogInfo("Payment for order %s marked %s", order.OrderNumber, status)
	utils.Success(c, "Payment status updated", gin.H{"paymentStatus": status})
}
