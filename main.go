package main

import (
	"log"

	"github.com/velora-cart/velora/config"
	"github.com/velora-cart/velora/routes"
	"github.com/velora-cart/velora/utils"
)

func main() {
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	config.InitGoogleOAuth()

	router := routes.SetupRouter(db, cfg)

	utils.LogInfo("Velora starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
