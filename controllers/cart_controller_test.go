package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
)

func setupCartRouter(db *gorm.DB, user models.User) *gin.Engine {
	router := gin.New()
	router.Use(asUser(user))
	cc := NewCartController(db)
	router.GET("/addtoCart/get", cc.GetCart)
	router.POST("/addtoCart/add", cc.AddToCart)
	router.POST("/addtoCart/addAll", cc.AddAllToCart)
	router.PUT("/addtoCart/update", cc.UpdateCart)
	router.DELETE("/addtoCart/delete", cc.DeleteFromCart)
	router.DELETE("/addtoCart/removeAll", cc.RemoveAll)
	router.GET("/navbar/getSubtotal", cc.GetSubtotal)
	return router
}

func TestAddToCartBumpsExistingLine(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "cart@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	router := setupCartRouter(db, customer)

	body := map[string]interface{}{"productId": products[0].ID, "quantity": 1}
	w := doJSON(t, router, http.MethodPost, "/addtoCart/add", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, router, http.MethodPost, "/addtoCart/add", body)
	require.Equal(t, http.StatusOK, w.Code)

	var item models.CartItem
	require.NoError(t, db.Where("user_id = ? AND product_id = ?", customer.ID, products[0].ID).
		First(&item).Error)
	assert.Equal(t, 2, item.Quantity)
}

func TestAddToCartRejectsOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", products[0].ID).
		Update("status", models.ProductStatusOutOfStock).Error)
	customer := models.User{Name: "Buyer", Email: "oos@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodPost, "/addtoCart/add",
		map[string]interface{}{"productId": products[0].ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddAllMovesWishlistIntoCart(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "addall@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodPost, "/addtoCart/addAll", map[string]interface{}{
		"productIds": []uint{products[0].ID, products[1].ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateCartZeroQuantityRemovesLine(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "update@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: customer.ID, ProductID: products[0].ID, Quantity: 2,
	}).Error)
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodPut, "/addtoCart/update", map[string]interface{}{
		"productId": products[0].ID,
		"quantity":  -1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetSubtotalUsesCurrentPrices(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "subtotal@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: customer.ID, ProductID: products[0].ID, Quantity: 2,
	}).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: customer.ID, ProductID: products[1].ID, Quantity: 1,
	}).Error)
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodGet, "/navbar/getSubtotal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.InDelta(t, 2*90+180, data["subtotal"].(float64), 0.001)

	// a repriced catalogue shows up immediately in the subtotal
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", products[0].ID).
		Update("product_price", 45).Error)
	w = doJSON(t, router, http.MethodGet, "/navbar/getSubtotal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.InDelta(t, 2*45+180, data["subtotal"].(float64), 0.001)
}

func TestDeleteAndRemoveAll(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "clear@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	for _, p := range products {
		require.NoError(t, db.Create(&models.CartItem{
			UserID: customer.ID, ProductID: p.ID, Quantity: 1,
		}).Error)
	}
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/addtoCart/delete?productId=%d", products[0].ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = doJSON(t, router, http.MethodDelete, "/addtoCart/removeAll", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetCartReturnsLineTotals(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Buyer", Email: "lines@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: customer.ID, ProductID: products[0].ID, Quantity: 3,
	}).Error)
	router := setupCartRouter(db, customer)

	w := doJSON(t, router, http.MethodGet, "/addtoCart/get", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID           uint    `json:"id"`
			CartQuantity int     `json:"cartQuantity"`
			LineTotal    float64 `json:"lineTotal"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 3, resp.Data[0].CartQuantity)
	assert.InDelta(t, 270, resp.Data[0].LineTotal, 0.001)
}
