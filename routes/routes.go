package routes

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/config"
	"github.com/velora-cart/velora/utils"
)

// SetupRouter wires every route group onto a fresh engine. The database
// handle flows into the controllers here; nothing else holds it.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("velora_session", store))

	SetupAuthRoutes(router, db)
	SetupProductRoutes(router, db)
	SetupUserRoutes(router, db)
	SetupAdminRoutes(router, db)

	return router
}
