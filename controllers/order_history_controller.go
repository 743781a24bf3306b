package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// OrderHistoryController serves the seller's order dashboard. A seller sees
// an order when at least one of its items is their product; the item list is
// filtered down to those products.
type OrderHistoryController struct {
	db *gorm.DB
}

// NewOrderHistoryController creates an OrderHistoryController backed by the
// given database.
func NewOrderHistoryController(db *gorm.DB) *OrderHistoryController {
	return &OrderHistoryController{db: db}
}

// UpdateDeliveryStatusRequest advances an order's delivery state.
type UpdateDeliveryStatusRequest struct {
	OrderNumber    string `json:"orderId" binding:"required"`
	DeliveryStatus int    `json:"deliveryStatus" binding:"required"`
}

// UpdatePaymentStatusRequest sets an order's payment state.
type UpdatePaymentStatusRequest struct {
	OrderNumber   string `json:"orderId" binding:"required"`
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// adminOrderRow is one item line of an order as the seller dashboard shows
// it, joined with the buyer's billing identity.
type adminOrderRow struct {
	OrderID        uint      `json:"-"`
	OrderNumber    string    `json:"orderId"`
	UserName       string    `json:"userName"`
	Country        string    `json:"country"`
	PaymentStatus  string    `json:"paymentStatus"`
	DeliveryStatus int       `json:"deliveryStatus"`
	TotalPrice     float64   `json:"totalPrice"`
	OrderAt        time.Time `json:"orderAt"`
	ProductTitle   string    `json:"productTitle"`
	Quantity       int       `json:"quantity"`
	ProductPrice   float64   `json:"productPrice"`
}

// groupedOrder is an order with its (seller-scoped) item lines folded in.
type groupedOrder struct {
	OrderNumber    string          `json:"orderId"`
	UserName       string          `json:"userName"`
	Country        string          `json:"country"`
	PaymentStatus  string          `json:"paymentStatus"`
	DeliveryStatus int             `json:"deliveryStatus"`
	TotalPrice     float64         `json:"totalPrice"`
	OrderAt        time.Time       `json:"orderAt"`
	ProductInfo    []orderItemView `json:"productInfo"`
}

type orderItemView struct {
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	ProductPrice float64 `json:"productPrice"`
}

const adminOrderQuery = `
	SELECT o.id AS order_id, o.order_number, o.payment_status, o.delivery_status,
	       o.total_price, o.created_at AS order_at,
	       b.first_name || ' ' || b.last_name AS user_name, b.country,
	       oi.product_title, oi.quantity, oi.product_price
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	JOIN products p     ON p.id = oi.product_id AND p.admin_id = ?
	JOIN billing_addresses b ON b.order_id = o.id`

func (oh *OrderHistoryController) fetchOrders(adminID uint, extra string, args ...interface{}) ([]groupedOrder, error) {
	query := adminOrderQuery
	queryArgs := append([]interface{}{adminID}, args...)
	if extra != "" {
		query += " " + extra
	}
	query += " ORDER BY o.created_at DESC"

	var rows []adminOrderRow
	if err := oh.db.Raw(query, queryArgs...).Scan(&rows).Error; err != nil {
		return nil, utils.StoreError("Failed to fetch orders", err)
	}

	grouped := make([]groupedOrder, 0)
	index := map[uint]int{}
	for _, row := range rows {
		i, seen := index[row.OrderID]
		if !seen {
			grouped = append(grouped, groupedOrder{
				OrderNumber:    row.OrderNumber,
				UserName:       row.UserName,
				Country:        row.Country,
				PaymentStatus:  row.PaymentStatus,
				DeliveryStatus: row.DeliveryStatus,
				TotalPrice:     row.TotalPrice,
				OrderAt:        row.OrderAt,
			})
			i = len(grouped) - 1
			index[row.OrderID] = i
		}
		grouped[i].ProductInfo = append(grouped[i].ProductInfo, orderItemView{
			ProductTitle: row.ProductTitle,
			Quantity:     row.Quantity,
			ProductPrice: row.ProductPrice,
		})
	}
	return grouped, nil
}

// GetOrders lists every order containing the seller's products.
func (oh *OrderHistoryController) GetOrders(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	orders, err := oh.fetchOrders(adminID, "")
	if err != nil {
		utils.LogError("GetOrders failed for admin %d: %v", adminID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Orders fetched successfully", orders)
}

// GetOrdersByCountries aggregates the seller's order volume per buyer
// country.
func (oh *OrderHistoryController) GetOrdersByCountries(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	query := `
		SELECT b.country, COUNT(DISTINCT o.id) AS order_count,
		       SUM(oi.quantity * oi.product_price) AS revenue
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p     ON p.id = oi.product_id AND p.admin_id = ?
		JOIN billing_addresses b ON b.order_id = o.id
		GROUP BY b.country
		ORDER BY order_count DESC`

	var results []struct {
		Country    string  `json:"country"`
		OrderCount int     `json:"orderCount"`
		Revenue    float64 `json:"revenue"`
	}
	if err := oh.db.Raw(query, adminID).Scan(&results).Error; err != nil {
		utils.InternalServerError(c, "Failed to aggregate orders", err.Error())
		return
	}
	utils.Success(c, "Orders by country fetched successfully", results)
}

// GetOrdersFromDate lists the seller's orders for a given month and year.
func (oh *OrderHistoryController) GetOrdersFromDate(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	month, err := utils.ParseID(c.Query("month"), "month")
	if err != nil || month > 12 {
		utils.BadRequest(c, "Invalid month", nil)
		return
	}
	year, err := utils.ParseID(c.Query("year"), "year")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	from := time.Date(int(year), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	orders, err := oh.fetchOrders(adminID,
		"WHERE o.created_at >= ? AND o.created_at < ?", from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Orders fetched successfully", orders)
}

// GetTodayOrders lists the seller's orders placed today.
func (oh *OrderHistoryController) GetTodayOrders(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	orders, err := oh.fetchOrders(adminID,
		"WHERE o.created_at >= ? AND o.created_at < ?", from, from.AddDate(0, 0, 1))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Today's orders fetched successfully", orders)
}

// UpdateDeliveryStatus advances an order's delivery state.
func (oh *OrderHistoryController) UpdateDeliveryStatus(c *gin.Context) {
	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if req.DeliveryStatus < models.DeliveryStatusPlaced || req.DeliveryStatus > models.DeliveryStatusDelivered {
		utils.ValidationError(c, "Invalid delivery status", nil)
		return
	}

	result := oh.db.Model(&models.Order{}).
		Where("order_number = ?", req.OrderNumber).
		Update("delivery_status", req.DeliveryStatus)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update delivery status", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Order not found")
		return
	}
	utils.LogInfo("Order %s delivery status set to %d", req.OrderNumber, req.DeliveryStatus)
	utils.Success(c, "Delivery status updated", nil)
}

// UpdatePaymentStatus sets an order's payment state from the dashboard.
func (oh *OrderHistoryController) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	switch req.PaymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		utils.ValidationError(c, "Invalid payment status", nil)
		return
	}

	result := oh.db.Model(&models.Order{}).
		Where("order_number = ?", req.OrderNumber).
		Update("payment_status", req.PaymentStatus)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update payment status", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Order not found")
		return
	}
	utils.Success(c, "Payment status updated", nil)
}
