package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/controllers"
	"github.com/velora-cart/velora/middleware"
)

// SetupUserRoutes mounts the signed-in customer routes: cart, wishlist and
// checkout.
func SetupUserRoutes(router *gin.Engine, db *gorm.DB) {
	cart := controllers.NewCartController(db)
	wishlist := controllers.NewWishlistController(db)
	checkout := controllers.NewCheckoutController(db)
	payments := controllers.NewPaymentController(db)

	cartGroup := router.Group("/addtoCart")
	cartGroup.Use(middleware.RequireAuth(db))
	{
		cartGroup.GET("/get", cart.GetCart)
		cartGroup.POST("/add", cart.AddToCart)
		cartGroup.POST("/addAll", cart.AddAllToCart)
		cartGroup.PUT("/update", cart.UpdateCart)
		cartGroup.DELETE("/delete", cart.DeleteFromCart)
		cartGroup.DELETE("/removeAll", cart.RemoveAll)
	}

	navbar := router.Group("/navbar")
	navbar.Use(middleware.RequireAuth(db))
	{
		navbar.GET("/getSubtotal", cart.GetSubtotal)
	}

	wishlistGroup := router.Group("/wishlist")
	wishlistGroup.Use(middleware.RequireAuth(db))
	{
		wishlistGroup.GET("/get", wishlist.GetWishlist)
		wishlistGroup.POST("/add", wishlist.AddToWishlist)
		wishlistGroup.DELETE("/delete", wishlist.DeleteFromWishlist)
		wishlistGroup.DELETE("/removeAll", wishlist.RemoveAll)
	}

	checkoutGroup := router.Group("/checkout")
	checkoutGroup.Use(middleware.RequireAuth(db))
	{
		checkoutGroup.POST("/add", checkout.PlaceOrder)
		checkoutGroup.GET("/get", checkout.GetOrders)
		checkoutGroup.POST("/create-payment-intent", payments.CreatePayment)
		checkoutGroup.POST("/confirmPayment", payments.ConfirmPayment)
		checkoutGroup.POST("/addReview", checkout.AddReview)
	}
}
