package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type txRow struct {
	ID    uint `gorm:"primaryKey"`
	Value string
}

func openTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&txRow{}))
	return db
}

func TestRunInTransactionCommits(t *testing.T) {
	db := openTxDB(t)

	err := RunInTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&txRow{Value: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&txRow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db := openTxDB(t)

	sentinel := BadRequestError("nope", nil)
	err := RunInTransaction(db, func(tx *gorm.DB) error {
		if err := tx.Create(&txRow{Value: "discarded"}).Error; err != nil {
			return err
		}
		return sentinel
	})
	assert.Equal(t, sentinel, err)

	var count int64
	require.NoError(t, db.Model(&txRow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db := openTxDB(t)

	assert.Panics(t, func() {
		_ = RunInTransaction(db, func(tx *gorm.DB) error {
			if err := tx.Create(&txRow{Value: "discarded"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	})

	var count int64
	require.NoError(t, db.Model(&txRow{}).Count(&count).Error)
	assert.Zero(t, count)
}
