package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// UpdateExpiredOffers deactivates every offer whose window has closed and
// restores the affected sellers' products to their baseline prices. Expired
// offers stay in the table for the seller's history; marking them inactive
// keeps a second sweep from repricing anything twice.
func (oc *OfferController) UpdateExpiredOffers(c *gin.Context) {
	var swept []models.Offer
	err := utils.RunInTransaction(oc.db, func(tx *gorm.DB) error {
		var expired []models.Offer
		if err := tx.Where("to_date < ? AND active = ?", time.Now(), true).Find(&expired).Error; err != nil {
			return utils.StoreError("Failed to load expired offers", err)
		}
		if len(expired) == 0 {
			return utils.NotFoundError("No expired offers found", nil)
		}

		for i := range expired {
			offer := &expired[i]
			var products []models.Product
			if err := tx.Where("admin_id = ?", offer.AdminID).Find(&products).Error; err != nil {
				return utils.StoreError("Failed to load products", err)
			}
			for j := range products {
				p := &products[j]
				if err := tx.Model(p).Updates(map[string]interface{}{
					"product_price":       utils.BaselinePrice(p),
					"flat_offer_discount": 0,
				}).Error; err != nil {
					return utils.StoreError("Failed to restore product prices", err)
				}
			}
			if err := tx.Model(offer).Update("active", false).Error; err != nil {
				return utils.StoreError("Failed to deactivate offer", err)
			}
			offer.Active = false
		}
		swept = expired
		return nil
	})
	if err != nil {
		if !utils.IsNotFoundError(err) {
			utils.LogError("UpdateExpiredOffers failed: %v", err)
		}
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Expired offer sweep deactivated %d offer(s)", len(swept))
	utils.Success(c, "Expired offers updated successfully", gin.H{"expiredOffers": swept})
}
