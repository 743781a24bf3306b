package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// SalesReportController computes profit and revenue figures for the seller
// dashboard. Only delivered orders count towards sales.
type SalesReportController struct {
	db *gorm.DB
}

// NewSalesReportController creates a SalesReportController backed by the
// given database.
func NewSalesReportController(db *gorm.DB) *SalesReportController {
	return &SalesReportController{db: db}
}

// salesRow is one delivered item line with its profit.
type salesRow struct {
	OrderNumber  string    `json:"orderId"`
	ProductTitle string    `json:"productTitle"`
	Quantity     int       `json:"quantity"`
	ProductPrice float64   `json:"productPrice"`
	ProductCost  float64   `json:"productCost"`
	Profit       float64   `json:"profit"`
	OrderAt      time.Time `json:"orderAt"`
}

const salesQuery = `
	SELECT o.order_number, oi.product_title, oi.quantity, oi.product_price,
	       p.product_cost,
	       oi.quantity * (oi.product_price - p.product_cost) AS profit,
	       o.created_at AS order_at
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	JOIN products p     ON p.id = oi.product_id AND p.admin_id = ?
	WHERE o.delivery_status = ?`

func (sc *SalesReportController) fetchSales(adminID uint, from, to *time.Time) ([]salesRow, error) {
	query := salesQuery
	args := []interface{}{adminID, models.DeliveryStatusDelivered}
	if from != nil && to != nil {
		query += " AND o.created_at >= ? AND o.created_at < ?"
		args = append(args, *from, *to)
	}
	query += " ORDER BY o.created_at"

	var rows []salesRow
	if err := sc.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, utils.StoreError("Failed to fetch sales", err)
	}
	return rows, nil
}

// GetTotalSales returns every delivered item line for the seller with
// per-line profit and the overall totals.
func (sc *SalesReportController) GetTotalSales(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	rows, err := sc.fetchSales(adminID, nil, nil)
	if err != nil {
		utils.LogError("GetTotalSales failed for admin %d: %v", adminID, err)
		utils.RespondError(c, err)
		return
	}

	var totalRevenue, totalProfit float64
	for _, row := range rows {
		totalRevenue += row.ProductPrice * float64(row.Quantity)
		totalProfit += row.Profit
	}

	utils.Success(c, "Sales fetched successfully", gin.H{
		"sales":        rows,
		"totalRevenue": totalRevenue,
		"totalProfit":  totalProfit,
	})
}

// GetSalesOnDate returns the seller's sales for a given month and year, with
// a per-day revenue series for charting.
func (sc *SalesReportController) GetSalesOnDate(c *gin.Context) {
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
	rows, err := sc.fetchSales(adminID, &from, &to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var totalRevenue, totalProfit float64
	daily := map[string]float64{}
	for _, row := range rows {
		revenue := row.ProductPrice * float64(row.Quantity)
		totalRevenue += revenue
		totalProfit += row.Profit
		daily[row.OrderAt.Format("2006-01-02")] += revenue
	}

	utils.Success(c, "Sales fetched successfully", gin.H{
		"sales":        rows,
		"totalRevenue": totalRevenue,
		"totalProfit":  totalProfit,
		"dailyRevenue": daily,
	})
}
