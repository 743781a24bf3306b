package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/controllers"
	"github.com/velora-cart/velora/middleware"
)

// SetupProductRoutes mounts the catalogue routes and the offer engine.
func SetupProductRoutes(router *gin.Engine, db *gorm.DB) {
	products := controllers.NewProductController(db)
	offers := controllers.NewOfferController(db)

	group := router.Group("/product")
	{
		group.GET("/getProducts", products.GetProducts)
	}

	admin := router.Group("/product")
	admin.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		admin.POST("/addProduct", products.AddProduct)
		admin.PUT("/updateQuantity", products.UpdateQuantity)

		admin.POST("/addOffer", offers.AddOffer)
		admin.GET("/getOffer", offers.GetOffers)
		admin.PUT("/updateOffer", offers.UpdateOffer)
		admin.DELETE("/deleteOffer", offers.DeleteOffer)
		admin.PUT("/updateExpiredOffers", offers.UpdateExpiredOffers)
	}
}
