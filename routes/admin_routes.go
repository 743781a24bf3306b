package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/controllers"
	"github.com/velora-cart/velora/middleware"
)

// SetupAdminRoutes mounts the seller dashboard: product management, order
// history, sales reports and customers.
func SetupAdminRoutes(router *gin.Engine, db *gorm.DB) {
	viewProducts := controllers.NewViewProductsController(db)
	orderHistory := controllers.NewOrderHistoryController(db)
	salesReports := controllers.NewSalesReportController(db)
	customers := controllers.NewCustomerController(db)

	viewGroup := router.Group("/viewProduct")
	viewGroup.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		viewGroup.GET("/get", viewProducts.GetProducts)
		viewGroup.GET("/checkPendingProduct", viewProducts.CheckPendingProduct)
		viewGroup.PUT("/updateProduct", viewProducts.UpdateProduct)
		viewGroup.DELETE("/deleteProduct", viewProducts.DeleteProduct)
	}

	historyGroup := router.Group("/orderHistory")
	historyGroup.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		historyGroup.GET("/get", orderHistory.GetOrders)
		historyGroup.GET("/getOrdersByCountries", orderHistory.GetOrdersByCountries)
		historyGroup.GET("/getFromDate", orderHistory.GetOrdersFromDate)
		historyGroup.GET("/todayOrders", orderHistory.GetTodayOrders)
		historyGroup.PUT("/updateDeliveryStatus", orderHistory.UpdateDeliveryStatus)
		historyGroup.PUT("/updatePaymentStatus", orderHistory.UpdatePaymentStatus)

		historyGroup.GET("/totalSales", salesReports.GetTotalSales)
		historyGroup.GET("/totalSalesOnRequiredDate", salesReports.GetSalesOnDate)
		historyGroup.GET("/salesReport/pdf", salesReports.ExportSalesPDF)
		historyGroup.GET("/salesReport/excel", salesReports.ExportSalesExcel)
	}

	customerGroup := router.Group("/customer")
	customerGroup.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		customerGroup.GET("/get", customers.GetCustomers)
	}
}
