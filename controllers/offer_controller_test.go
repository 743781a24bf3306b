package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
)

func setupOfferRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	oc := NewOfferController(db)
	router.POST("/product/addOffer", oc.AddOffer)
	router.GET("/product/getOffer", oc.GetOffers)
	router.PUT("/product/updateOffer", oc.UpdateOffer)
	router.DELETE("/product/deleteOffer", oc.DeleteOffer)
	router.PUT("/product/updateExpiredOffers", oc.UpdateExpiredOffers)
	return router
}

func addOfferBody(adminID uint, discount float64) map[string]interface{} {
	return map[string]interface{}{
		"adminId":  adminID,
		"title":    "Season Sale",
		"fromDate": time.Now().Add(-time.Hour),
		"toDate":   time.Now().Add(24 * time.Hour),
		"discount": discount,
	}
}

func loadProducts(t *testing.T, db *gorm.DB, adminID uint) []models.Product {
	t.Helper()
	var products []models.Product
	require.NoError(t, db.Where("admin_id = ?", adminID).Order("id").Find(&products).Error)
	return products
}

func TestAddOfferDiscountsWholeCatalogue(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 20))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 80, products[0].ProductPrice, 0.001)
	assert.InDelta(t, 160, products[1].ProductPrice, 0.001)
	for _, p := range products {
		assert.InDelta(t, 20, p.FlatOfferDiscount, 0.001)
	}
}

func TestAddOfferRejectsSecondActiveOffer(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 20))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 30))
	assert.Equal(t, http.StatusConflict, w.Code)

	// prices still reflect the first offer
	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 80, products[0].ProductPrice, 0.001)
}

func TestAddOfferRejectsBadDiscount(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 120))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddOfferWithoutProductsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	admin := models.User{Name: "Empty Seller", Email: "noadd@example.com", Status: models.StatusAdmin}
	require.NoError(t, db.Create(&admin).Error)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 20))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// the failed bulk update must take the offer row down with it
	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Where("admin_id = ?", admin.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateOfferRepricesFromPreOfferPrice(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 20))
	require.Equal(t, http.StatusCreated, w.Code)
	var offer models.Offer
	require.NoError(t, db.Where("admin_id = ?", admin.ID).First(&offer).Error)

	// 20% then 50% must behave like a plain 50%, not 50% on top of 20%
	w = doJSON(t, router, http.MethodPut, "/product/updateOffer", map[string]interface{}{
		"adminId":      admin.ID,
		"currentOffer": 50,
		"editOfferId":  offer.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 50, products[0].ProductPrice, 0.001)
	assert.InDelta(t, 100, products[1].ProductPrice, 0.001)

	require.NoError(t, db.First(&offer, offer.ID).Error)
	assert.InDelta(t, 50, offer.Discount, 0.001)

	data := decodeData(t, w)
	assert.Contains(t, data, "offer")
	assert.Contains(t, data, "products")
}

func TestUpdateOfferUnknownOfferIs404(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPut, "/product/updateOffer", map[string]interface{}{
		"adminId":      admin.ID,
		"currentOffer": 50,
		"editOfferId":  9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 90, products[0].ProductPrice, 0.001)
}

func TestUpdateOfferWithoutProductsDoesNotCommit(t *testing.T) {
	db := setupTestDB(t)
	admin := models.User{Name: "Empty Seller", Email: "noupd@example.com", Status: models.StatusAdmin}
	require.NoError(t, db.Create(&admin).Error)
	offer := models.Offer{
		AdminID:  admin.ID,
		Title:    "Orphan Sale",
		FromDate: time.Now().Add(-time.Hour),
		ToDate:   time.Now().Add(24 * time.Hour),
		Discount: 20,
		Active:   true,
	}
	require.NoError(t, db.Create(&offer).Error)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPut, "/product/updateOffer", map[string]interface{}{
		"adminId":      admin.ID,
		"currentOffer": 50,
		"editOfferId":  offer.ID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the rejected update must leave the stored discount untouched
	require.NoError(t, db.First(&offer, offer.ID).Error)
	assert.InDelta(t, 20, offer.Discount, 0.001)
}

func TestDeleteOfferRestoresBaselinePrices(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	w := doJSON(t, router, http.MethodPost, "/product/addOffer", addOfferBody(admin.ID, 20))
	require.Equal(t, http.StatusCreated, w.Code)
	var offer models.Offer
	require.NoError(t, db.Where("admin_id = ?", admin.ID).First(&offer).Error)

	path := fmt.Sprintf("/product/deleteOffer?adminId=%d&offerId=%d", admin.ID, offer.ID)
	w = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 90, products[0].ProductPrice, 0.001)
	assert.InDelta(t, 180, products[1].ProductPrice, 0.001)
	for _, p := range products {
		assert.Zero(t, p.FlatOfferDiscount)
	}

	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Where("id = ?", offer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteOfferWithoutProductsRollsBack(t *testing.T) {
	db := setupTestDB(t)
	admin := models.User{Name: "Empty Seller", Email: "empty@example.com", Status: models.StatusAdmin}
	require.NoError(t, db.Create(&admin).Error)
	offer := models.Offer{
		AdminID:  admin.ID,
		Title:    "Orphan Sale",
		FromDate: time.Now().Add(-time.Hour),
		ToDate:   time.Now().Add(24 * time.Hour),
		Discount: 20,
		Active:   true,
	}
	require.NoError(t, db.Create(&offer).Error)
	router := setupOfferRouter(db)

	path := fmt.Sprintf("/product/deleteOffer?adminId=%d&offerId=%d", admin.ID, offer.ID)
	w := doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the rejected delete must not have removed the offer
	var count int64
	require.NoError(t, db.Model(&models.Offer{}).Where("id = ?", offer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteOfferUnknownOfferIs404(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	path := fmt.Sprintf("/product/deleteOffer?adminId=%d&offerId=9999", admin.ID)
	w := doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOffersDerivesIsActive(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	live := models.Offer{
		AdminID: admin.ID, Title: "Live", Discount: 10,
		FromDate: time.Now().Add(-time.Hour), ToDate: time.Now().Add(time.Hour),
		Active: true,
	}
	expired := models.Offer{
		AdminID: admin.ID, Title: "Expired", Discount: 15,
		FromDate: time.Now().Add(-48 * time.Hour), ToDate: time.Now().Add(-24 * time.Hour),
		Active: true,
	}
	require.NoError(t, db.Create(&live).Error)
	require.NoError(t, db.Create(&expired).Error)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/product/getOffer?adminId=%d", admin.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	flags := map[string]bool{}
	var resp struct {
		Data []struct {
			Title    string `json:"title"`
			IsActive bool   `json:"isActive"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, o := range resp.Data {
		flags[o.Title] = o.IsActive
	}
	assert.True(t, flags["Live"])
	assert.False(t, flags["Expired"])
}

func TestExpiredOfferSweepIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	router := setupOfferRouter(db)

	offer := models.Offer{
		AdminID: admin.ID, Title: "Past Sale", Discount: 20,
		FromDate: time.Now().Add(-72 * time.Hour), ToDate: time.Now().Add(-time.Hour),
		Active: true,
	}
	require.NoError(t, db.Create(&offer).Error)
	// catalogue still carries the expired offer's prices
	require.NoError(t, db.Model(&models.Product{}).Where("admin_id = ?", admin.ID).
		Updates(map[string]interface{}{"flat_offer_discount": 20}).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("admin_id = ? AND previous_price = 100", admin.ID).
		Update("product_price", 80).Error)
	require.NoError(t, db.Model(&models.Product{}).Where("admin_id = ? AND previous_price = 200", admin.ID).
		Update("product_price", 160).Error)

	w := doJSON(t, router, http.MethodPut, "/product/updateExpiredOffers", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	products := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 90, products[0].ProductPrice, 0.001)
	assert.InDelta(t, 180, products[1].ProductPrice, 0.001)
	for _, p := range products {
		assert.Zero(t, p.FlatOfferDiscount)
	}

	// offer survives as history, flagged inactive
	require.NoError(t, db.First(&offer, offer.ID).Error)
	assert.False(t, offer.Active)

	// a second sweep finds nothing and changes nothing
	w = doJSON(t, router, http.MethodPut, "/product/updateExpiredOffers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	again := loadProducts(t, db, admin.ID)
	assert.InDelta(t, 90, again[0].ProductPrice, 0.001)
}
