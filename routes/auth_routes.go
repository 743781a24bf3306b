package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/controllers"
	"github.com/velora-cart/velora/middleware"
)

// SetupAuthRoutes mounts the public authentication routes and the admin
// profile routes.
func SetupAuthRoutes(router *gin.Engine, db *gorm.DB) {
	auth := controllers.NewAuthController(db)

	public := router.Group("/authentication")
	{
		public.POST("/signUp", auth.SignUp)
		public.GET("/signUp", auth.CheckEmail)
		public.POST("/logIn", auth.LogIn)
		public.GET("/google", auth.GoogleLogin)
		public.GET("/google/callback", auth.GoogleCallback)
	}

	protected := router.Group("/authentication")
	protected.Use(middleware.RequireAuth(db))
	{
		protected.POST("/logOut", auth.LogOut)
		protected.GET("/getCountry", auth.GetCountry)
	}

	admin := router.Group("/authentication")
	admin.Use(middleware.RequireAuth(db), middleware.RequireAdmin())
	{
		admin.GET("/viewProfileAdmin", auth.ViewProfileAdmin)
		admin.PUT("/updateAdminProfile", auth.UpdateAdminProfile)
		admin.PUT("/updateAdminAddress", auth.UpdateAdminAddress)
		admin.POST("/checkOldPassword", auth.CheckOldPassword)
		admin.PUT("/adminResetPassword", auth.ResetPassword)
	}
}
