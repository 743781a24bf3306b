package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// OfferController handles promotional offers and the price recalculation
// they trigger across a seller's catalogue. Every mutation that touches both
// the offer row and product prices runs in a single transaction so the
// catalogue never shows a half-applied offer.
type OfferController struct {
	db *gorm.DB
}

// NewOfferController creates an OfferController backed by the given database.
func NewOfferController(db *gorm.DB) *OfferController {
	return &OfferController{db: db}
}

// AddOfferRequest is the payload for creating an offer.
type AddOfferRequest struct {
	AdminID     uint      `json:"adminId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	FromDate    time.Time `json:"fromDate" binding:"required"`
	ToDate      time.Time `json:"toDate" binding:"required"`
	Discount    float64   `json:"discount" binding:"required"`
}

// UpdateOfferRequest is the payload for changing an offer's discount.
type UpdateOfferRequest struct {
	AdminID      uint    `json:"adminId" binding:"required"`
	CurrentOffer float64 `json:"currentOffer" binding:"required"`
	EditOfferID  uint    `json:"editOfferId" binding:"required"`
}

// offerView is the list representation of an offer, with the derived
// isActive flag clients use to grey out expired entries.
type offerView struct {
	models.Offer
	IsActive bool `json:"isActive"`
}

// AddOffer creates an offer for a seller and discounts every product in
// their catalogue. A seller carries at most one live offer at a time.
func (oc *OfferController) AddOffer(c *gin.Context) {
	var req AddOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateDiscount(req.Discount); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := utils.ValidateOfferWindow(req.FromDate, req.ToDate); err != nil {
		utils.RespondError(c, err)
		return
	}

	var offer models.Offer
	err := utils.RunInTransaction(oc.db, func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Offer{}).
			Where("admin_id = ? AND active = ? AND to_date > ?", req.AdminID, true, time.Now()).
			Count(&existing).Error; err != nil {
			return utils.StoreError("Failed to check existing offers", err)
		}
		if existing > 0 {
			return utils.ConflictError("An active offer already exists for this seller", nil)
		}

		offer = models.Offer{
			AdminID:     req.AdminID,
			Title:       req.Title,
			Description: req.Description,
			FromDate:    req.FromDate,
			ToDate:      req.ToDate,
			Discount:    req.Discount,
			Active:      true,
		}
		if err := tx.Create(&offer).Error; err != nil {
			return utils.StoreError("Failed to create offer", err)
		}

		var products []models.Product
		if err := tx.Where("admin_id = ?", req.AdminID).Find(&products).Error; err != nil {
			return utils.StoreError("Failed to load products", err)
		}
		if len(products) == 0 {
			// an offer over an empty catalogue repriced nothing; treat the
			// bulk update as failed so the offer row does not commit
			return utils.StoreError("Failed to update products", nil)
		}
		for i := range products {
			p := &products[i]
			newPrice := p.PreviousPrice - p.PreviousPrice*req.Discount/100
			if err := tx.Model(p).Updates(map[string]interface{}{
				"product_price":       newPrice,
				"flat_offer_discount": req.Discount,
			}).Error; err != nil {
				return utils.StoreError("Failed to apply offer to products", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("AddOffer failed for admin %d: %v", req.AdminID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Offer %d created for admin %d at %.2f%%", offer.ID, req.AdminID, req.Discount)
	utils.Created(c, "Offer created successfully", gin.H{"offer": offer})
}

// GetOffers lists a seller's offers, newest first, with a derived isActive
// flag on each.
func (oc *OfferController) GetOffers(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var offers []models.Offer
	if err := oc.db.Where("admin_id = ?", adminID).Order("created_at DESC").Find(&offers).Error; err != nil {
		utils.LogError("GetOffers failed for admin %d: %v", adminID, err)
		utils.InternalServerError(c, "Failed to fetch offers", err.Error())
		return
	}

	now := time.Now()
	views := make([]offerView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, offerView{Offer: offer, IsActive: offer.ToDate.After(now)})
	}
	utils.Success(c, "Offers fetched successfully", views)
}

// UpdateOffer changes an offer's discount and reprices the seller's
// catalogue. The new discount applies to each product's pre-offer price, so
// repeated edits never compound.
func (oc *OfferController) UpdateOffer(c *gin.Context) {
	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateDiscount(req.CurrentOffer); err != nil {
		utils.RespondError(c, err)
		return
	}

	var offer models.Offer
	var products []models.Product
	err := utils.RunInTransaction(oc.db, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND admin_id = ?", req.EditOfferID, req.AdminID).First(&offer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Offer not found", nil)
			}
			return utils.StoreError("Failed to load offer", err)
		}

		if err := tx.Where("admin_id = ?", req.AdminID).Find(&products).Error; err != nil {
			return utils.StoreError("Failed to load products", err)
		}
		if len(products) == 0 {
			return utils.NotFoundError("No products found for this seller", nil)
		}
		for i := range products {
			p := &products[i]
			newPrice := utils.OfferPrice(p, req.CurrentOffer)
			if err := tx.Model(p).Updates(map[string]interface{}{
				"product_price":       newPrice,
				"flat_offer_discount": req.CurrentOffer,
			}).Error; err != nil {
				return utils.StoreError("Failed to reprice products", err)
			}
			p.ProductPrice = newPrice
			p.FlatOfferDiscount = req.CurrentOffer
		}

		if err := tx.Model(&offer).Update("discount", req.CurrentOffer).Error; err != nil {
			return utils.StoreError("Failed to update offer", err)
		}
		offer.Discount = req.CurrentOffer
		return nil
	})
	if err != nil {
		utils.LogError("UpdateOffer failed for offer %d: %v", req.EditOfferID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Offer %d updated to %.2f%% for admin %d", offer.ID, req.CurrentOffer, req.AdminID)
	utils.Success(c, "Offer updated successfully", gin.H{
		"offer":    offer,
		"products": products,
	})
}

// DeleteOffer removes an offer and restores every product of the seller to
// its baseline price. The delete and the price restore commit together; if
// the seller has no products the request is rejected and nothing changes.
func (oc *OfferController) DeleteOffer(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	offerID, err := utils.ParseID(c.Query("offerId"), "offerId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	err = utils.RunInTransaction(oc.db, func(tx *gorm.DB) error {
		var offer models.Offer
		if err := tx.Where("id = ? AND admin_id = ?", offerID, adminID).First(&offer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("Offer not found", nil)
			}
			return utils.StoreError("Failed to load offer", err)
		}

		if err := tx.Delete(&offer).Error; err != nil {
			return utils.StoreError("Failed to delete offer", err)
		}

		var products []models.Product
		if err := tx.Where("admin_id = ?", adminID).Find(&products).Error; err != nil {
			return utils.StoreError("Failed to load products", err)
		}
		if len(products) == 0 {
			return utils.BadRequestError("No products found for this seller", nil)
		}
		for i := range products {
			p := &products[i]
			if err := tx.Model(p).Updates(map[string]interface{}{
				"product_price":       utils.BaselinePrice(p),
				"flat_offer_discount": 0,
			}).Error; err != nil {
				return utils.StoreError("Failed to restore product prices", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("DeleteOffer failed for offer %d: %v", offerID, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("Offer %d deleted for admin %d", offerID, adminID)
	utils.Success(c, "Offer deleted successfully", nil)
}
