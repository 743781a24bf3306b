package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxOrderNumberAttempts bounds how many random 5-digit draws we try before
// falling back to a UUID. The short space (90000 values) can fill up; the
// fallback keeps allocation from looping forever.
const maxOrderNumberAttempts = 10

// GenerateOrderNumber allocates a customer-facing order number that is unique
// among existing orders. It draws short numeric IDs first and widens to a
// UUID if the short space keeps colliding.
func GenerateOrderNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < maxOrderNumberAttempts; i++ {
		candidate := fmt.Sprintf("%05d", 10000+rand.Intn(90000))

		var count int64
		if err := tx.Table("orders").Where("order_number = ?", candidate).Count(&count).Error; err != nil {
			return "", StoreError("Failed to check order number", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return uuid.New().String(), nil
}
