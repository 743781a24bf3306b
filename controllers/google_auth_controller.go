package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/velora-cart/velora/config"
	"github.com/velora-cart/velora/models"
	"github.com/velora-cart/velora/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin redirects the browser to Google's consent screen.
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	if config.GoogleOAuthConfig == nil || config.GoogleOAuthConfig.ClientID == "" {
		utils.InternalServerError(c, "Google sign-in is not configured", nil)
		return
	}
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback exchanges the authorization code, fetches the Google
// profile and signs the user in, creating an account on first sight.
func (ac *AuthController) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Missing authorization code", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.LogError("Google code exchange failed: %v", err)
		utils.Unauthorized(c, "Google sign-in failed")
		return
	}

	client := config.GoogleOAuthConfig.Client(c.Request.Context(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		utils.LogError("Google userinfo fetch failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch Google profile", nil)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.InternalServerError(c, "Failed to decode Google profile", nil)
		return
	}

	var user models.User
	err = ac.db.Where("google_id = ? OR email = ?", info.ID, info.Email).First(&user).Error
	if err != nil {
		user = models.User{
			Name:     info.Name,
			Email:    info.Email,
			GoogleID: info.ID,
			Status:   models.StatusCustomer,
		}
		if err := ac.db.Create(&user).Error; err != nil {
			utils.LogError("Google signup failed for %s: %v", info.Email, err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		utils.LogInfo("User %d created via Google sign-in", user.ID)
	} else if user.GoogleID == "" {
		if err := ac.db.Model(&user).Update("google_id", info.ID).Error; err != nil {
			utils.LogError("Failed to link Google account for user %d: %v", user.ID, err)
		}
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email, user.Status)
	if err != nil {
		utils.InternalServerError(c, "Failed to sign in", nil)
		return
	}

	session := sessions.Default(c)
	session.Set("token", jwtToken)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for user %d: %v", user.ID, err)
	}

	utils.Success(c, "Signed in with Google", gin.H{
		"token": jwtToken,
		"user":  user,
	})
}
