package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("velora_session", store))
	ac := NewAuthController(db)
	router.POST("/authentication/signUp", ac.SignUp)
	router.GET("/authentication/signUp", ac.CheckEmail)
	router.POST("/authentication/logIn", ac.LogIn)
	return router
}

func signUpBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":     "Test User",
		"email":    email,
		"password": "Sup3rSecret",
	}
}

func TestSignUpAndLogIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", signUpBody("new@example.com"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "new@example.com").First(&user).Error)
	assert.NotEqual(t, "Sup3rSecret", user.Password)

	w = doJSON(t, router, http.MethodPost, "/authentication/logIn", map[string]interface{}{
		"email":    "new@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.NotEmpty(t, data["token"])
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", signUpBody("dup@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, http.MethodPost, "/authentication/signUp", signUpBody("dup@example.com"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	body := signUpBody("weak@example.com")
	body["password"] = "alllowercase"
	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSignUpCreatesAdminProfileForAdmins(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	body := signUpBody("admin@example.com")
	body["status"] = models.StatusAdmin
	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&user).Error)
	var profile models.AdminProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestLogInRejectsWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", signUpBody("locked@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/authentication/logIn", map[string]interface{}{
		"email":    "locked@example.com",
		"password": "WrongPass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(db)

	w := doJSON(t, router, http.MethodPost, "/authentication/signUp", signUpBody("taken@example.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/authentication/signUp?email=taken@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["exists"])

	w = doJSON(t, router, http.MethodGet, "/authentication/signUp?email=free@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeData(t, w)["exists"])
}
