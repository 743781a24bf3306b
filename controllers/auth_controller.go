package controllers

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

// AuthController handles registration, login and admin profile management.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController backed by the given database.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// SignUpRequest is the registration payload.
type SignUpRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CountryCode string `json:"countryCode"`
	ContactNo   string `json:"contactNo"`
	CountryName string `json:"countryName"`
	Status      int    `json:"status"`
}

// LogInRequest is the login payload.
type LogInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the admin profile payload.
type UpdateProfileRequest struct {
	AdminID uint   `json:"adminId" binding:"required"`
	Name    string `json:"name"`
	Brand   string `json:"brand"`
	DOB     string `json:"dob"`
}

// UpdateAddressRequest is the admin address payload.
type UpdateAddressRequest struct {
	AdminID       uint   `json:"adminId" binding:"required"`
	City          string `json:"city"`
	PostalAddress string `json:"postalAddress"`
}

// PasswordChangeRequest is the password reset payload.
type PasswordChangeRequest struct {
	AdminID     uint   `json:"adminId" binding:"required"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// SignUp registers a new user.
func (ac *AuthController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}

	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.Conflict(c, "Email already registered", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("SignUp failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hashed,
		CountryCode: req.CountryCode,
		ContactNo:   req.ContactNo,
		CountryName: req.CountryName,
		Status:      req.Status,
	}
	err = utils.RunInTransaction(ac.db, func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return utils.StoreError("Failed to create account", err)
		}
		if user.Status == models.StatusAdmin {
			profile := models.AdminProfile{UserID: user.ID}
			if err := tx.Create(&profile).Error; err != nil {
				return utils.StoreError("Failed to create admin profile", err)
			}
		}
		return nil
	})
	if err != nil {
		utils.LogError("SignUp failed for %s: %v", req.Email, err)
		utils.RespondError(c, err)
		return
	}

	utils.LogInfo("User %d registered (%s)", user.ID, req.Email)
	utils.Created(c, "Account created successfully", gin.H{"user": user})
}

// CheckEmail reports whether an email is already registered. The signup form
// polls this while the user types.
func (ac *AuthController) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if err := utils.ValidateEmail(email); err != nil {
		utils.RespondError(c, err)
		return
	}
	var count int64
	if err := ac.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Failed to check email", err.Error())
		return
	}
	utils.Success(c, "Email checked", gin.H{"exists": count > 0})
}

// LogIn authenticates a user and issues a JWT. The token is also stored in
// the session so browser clients stay signed in without juggling headers.
func (ac *AuthController) LogIn(c *gin.Context) {
	var req LogInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Status)
	if err != nil {
		utils.LogError("LogIn failed to sign token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to sign in", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("token", token)
	if err := session.Save(); err != nil {
		utils.LogError("LogIn failed to save session for user %d: %v", user.ID, err)
	}

	utils.LogInfo("User %d signed in", user.ID)
	utils.Success(c, "Signed in successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// LogOut clears the session.
func (ac *AuthController) LogOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.InternalServerError(c, "Failed to sign out", err.Error())
		return
	}
	utils.Success(c, "Signed out successfully", nil)
}

// ViewProfileAdmin returns the admin's account and profile details.
func (ac *AuthController) ViewProfileAdmin(c *gin.Context) {
	adminID, err := utils.ParseID(c.Query("adminId"), "adminId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var user models.User
	if err := ac.db.First(&user, adminID).Error; err != nil {
		utils.NotFound(c, "Admin not found")
		return
	}
	var profile models.AdminProfile
	if err := ac.db.Where("user_id = ?", adminID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Failed to load profile", err.Error())
		return
	}
	utils.Success(c, "Profile fetched successfully", gin.H{
		"user":    user,
		"profile": profile,
	})
}

// UpdateAdminProfile updates the admin's display name, brand and DOB.
func (ac *AuthController) UpdateAdminProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	err := utils.RunInTransaction(ac.db, func(tx *gorm.DB) error {
		if req.Name != "" {
			if err := tx.Model(&models.User{}).Where("id = ?", req.AdminID).
				Update("name", req.Name).Error; err != nil {
				return utils.StoreError("Failed to update name", err)
			}
		}
		updates := map[string]interface{}{}
		if req.Brand != "" {
			updates["brand"] = req.Brand
		}
		if req.DOB != "" {
			updates["dob"] = req.DOB
		}
		if len(updates) > 0 {
			result := tx.Model(&models.AdminProfile{}).Where("user_id = ?", req.AdminID).Updates(updates)
			if result.Error != nil {
				return utils.StoreError("Failed to update profile", result.Error)
			}
			if result.RowsAffected == 0 {
				return utils.NotFoundError("Admin profile not found", nil)
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Profile updated successfully", nil)
}

// UpdateAdminAddress updates the admin's city and postal address.
func (ac *AuthController) UpdateAdminAddress(c *gin.Context) {
	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	result := ac.db.Model(&models.AdminProfile{}).Where("user_id = ?", req.AdminID).
		Updates(map[string]interface{}{
			"city":           req.City,
			"postal_address": req.PostalAddress,
		})
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update address", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Admin profile not found")
		return
	}
	utils.Success(c, "Address updated successfully", nil)
}

// CheckOldPassword verifies the admin's current password before the reset
// form lets them pick a new one.
func (ac *AuthController) CheckOldPassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}

	var user models.User
	if err := ac.db.First(&user, req.AdminID).Error; err != nil {
		utils.NotFound(c, "Admin not found")
		return
	}
	utils.Success(c, "Password checked", gin.H{
		"matches": utils.CheckPassword(req.OldPassword, user.Password),
	})
}

// ResetPassword changes the admin's password after verifying the old one.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request data", err.Error())
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}

	var user models.User
	if err := ac.db.First(&user, req.AdminID).Error; err != nil {
		utils.NotFound(c, "Admin not found")
		return
	}
	if !utils.CheckPassword(req.OldPassword, user.Password) {
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.InternalServerError(c, "Failed to reset password", nil)
		return
	}
	if err := ac.db.Model(&user).Update("password", hashed).Error; err != nil {
		utils.InternalServerError(c, "Failed to reset password", err.Error())
		return
	}
	utils.LogInfo("Password reset for admin %d", req.AdminID)
	utils.Success(c, "Password reset successfully", nil)
}

// GetCountry returns the stored country details for a user.
func (ac *AuthController) GetCountry(c *gin.Context) {
	userID, err := utils.ParseID(c.Query("userId"), "userId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var user models.User
	if err := ac.db.First(&user, userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, "Country fetched successfully", gin.H{
		"countryCode": user.CountryCode,
		"countryName": user.CountryName,
		"contactNo":   user.ContactNo,
	})
}
