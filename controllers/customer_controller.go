package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/utils"
)

// CustomerController lists the buyers who have ordered a seller's products.
type CustomerController struct {
	db *gorm.DB
}

// NewCustomerController creates a CustomerController backed by the given
// database.
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

// customerSummary groups a buyer's activity with one seller, keyed by the
// billing email.
type customerSummary struct {
	Email         string    `json:"email"`
	UserName      string    `json:"userName"`
	Country       string    `json:"country"`
	OrderCount    int       `json:"orderCount"`
	TotalSpent    float64   `json:"totalSpent"`
	LastOrderDate time.Time `json:"lastOrderDate"`
}

// GetCustomers aggregates buyers of the seller's products by billing email
// with order count, spend and last order date.
func (cu *CustomerController) GetCustomers(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	query := `
		SELECT b.email,
		       MAX(b.first_name || ' ' || b.last_name) AS user_name,
		       MAX(b.country)                          AS country,
		       COUNT(DISTINCT o.id)                    AS order_count,
		       SUM(oi.quantity * oi.product_price)     AS total_spent,
		       MAX(o.created_at)                       AS last_order_date
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p     ON p.id = oi.product_id AND p.admin_id = ?
		JOIN billing_addresses b ON b.order_id = o.id
		GROUP BY b.email
		ORDER BY last_order_date DESC`

	var customers []customerSummary
	if err := cu.db.Raw(query, adminID).Scan(&customers).Error; err != nil {
		utils.LogError("GetCustomers failed for admin %d: %v", adminID, err)
		utils.InternalServerError(c, "Failed to fetch customers", err.Error())
		return
	}
	utils.Success(c, "Customers fetched successfully", customers)
}
