package utils

import (
	"gorm.io/gorm"
)

// RunInTransaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back when fn returns an error or
// panics. Callers must perform every write through the handle passed to fn.
func RunInTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return StoreError("Failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return StoreError("Failed to commit transaction", err)
	}
	return nil
}
