package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
)

func setupProductRouter(db *gorm.DB, viewer *models.User) *gin.Engine {
	router := gin.New()
	if viewer != nil {
		router.Use(asUser(*viewer))
	}
	pc := NewProductController(db)
	router.GET("/product/getProducts", pc.GetProducts)
	router.POST("/product/addProduct", pc.AddProduct)
	router.PUT("/product/updateQuantity", pc.UpdateQuantity)
	return router
}

func TestGetProductsDecoratesWithViewerState(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	customer := models.User{Name: "Viewer", Email: "viewer@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	require.NoError(t, db.Create(&models.CartItem{
		UserID: customer.ID, ProductID: products[0].ID, Quantity: 3,
	}).Error)
	require.NoError(t, db.Create(&models.WishlistItem{
		UserID: customer.ID, ProductID: products[1].ID,
	}).Error)

	router := setupProductRouter(db, &customer)
	w := doJSON(t, router, http.MethodGet, "/product/getProducts", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []struct {
			ID           uint `json:"id"`
			CartQuantity int  `json:"cartQuantity"`
			InWishlist   bool `json:"inWishlist"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)

	byID := map[uint]struct {
		CartQuantity int
		InWishlist   bool
	}{}
	for _, row := range resp.Data {
		byID[row.ID] = struct {
			CartQuantity int
			InWishlist   bool
		}{row.CartQuantity, row.InWishlist}
	}
	assert.Equal(t, 3, byID[products[0].ID].CartQuantity)
	assert.False(t, byID[products[0].ID].InWishlist)
	assert.Zero(t, byID[products[1].ID].CartQuantity)
	assert.True(t, byID[products[1].ID].InWishlist)
}

func TestGetProductsHidesOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", products[0].ID).
		Updates(map[string]interface{}{"status": models.ProductStatusOutOfStock, "quantity": 0}).Error)

	router := setupProductRouter(db, nil)
	w := doJSON(t, router, http.MethodGet, "/product/getProducts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, products[1].ID, resp.Data[0].ID)
}

func TestAddProductAppliesLiveOffer(t *testing.T) {
	db := setupTestDB(t)
	admin, _ := seedAdminWithProducts(t, db)
	require.NoError(t, db.Create(&models.Offer{
		AdminID: admin.ID, Title: "Live", Discount: 20,
		FromDate: time.Now().Add(-time.Hour), ToDate: time.Now().Add(time.Hour),
		Active: true,
	}).Error)

	router := setupProductRouter(db, nil)
	w := doJSON(t, router, http.MethodPost, "/product/addProduct", map[string]interface{}{
		"adminId":         admin.ID,
		"title":           "Pine Chair",
		"previousPrice":   50,
		"productCost":     30,
		"discount":        10,
		"productquantity": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.Where("title = ?", "Pine Chair").First(&product).Error)
	// the live 20% offer wins over the product's 10% standing discount
	assert.InDelta(t, 40, product.ProductPrice, 0.001)
	assert.InDelta(t, 20, product.FlatOfferDiscount, 0.001)
}

func TestUpdateQuantityFlipsStockStatus(t *testing.T) {
	db := setupTestDB(t)
	_, products := seedAdminWithProducts(t, db)
	router := setupProductRouter(db, nil)

	w := doJSON(t, router, http.MethodPut, "/product/updateQuantity", map[string]interface{}{
		"productId": products[1].ID,
		"quantity":  -3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var p models.Product
	require.NoError(t, db.First(&p, products[1].ID).Error)
	assert.Zero(t, p.Quantity)
	assert.Equal(t, models.ProductStatusOutOfStock, p.Status)

	// restock flips it back
	w = doJSON(t, router, http.MethodPut, "/product/updateQuantity", map[string]interface{}{
		"productId": products[1].ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&p, products[1].ID).Error)
	assert.Equal(t, 2, p.Quantity)
	assert.Equal(t, models.ProductStatusInStock, p.Status)

	// draining below zero is refused
	w = doJSON(t, router, http.MethodPut, "/product/updateQuantity", map[string]interface{}{
		"productId": products[1].ID,
		"quantity":  -5,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
