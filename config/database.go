package config

import (
	"fmt"

	"github.com/velora-cart/velora/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the database connection and performs migrations. The returned
// handle is passed explicitly to controllers and middleware; there is no
// package-level connection.
func InitDB(config *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migrations for every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.Product{},
		&models.Offer{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.BillingAddress{},
		&models.Review{},
		&models.ReviewProduct{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}
