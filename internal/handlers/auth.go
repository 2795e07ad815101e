package handlers

import (
	"clinic-management-server/internal/config"
	"clinic-management-server/internal/middleware"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles session authentication requests.
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

// LoginRequest represents the request body for staff login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff member and opens a cookie session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid credentials")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := utils.GenerateSessionToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to open session: "+err.Error())
		return
	}

	// Session lives in an HTTP-only cookie; nothing token-shaped goes in the body.
	c.SetCookie(
		utils.SessionCookieName,
		token,
		h.Cfg.SessionTTLHours*60*60,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Login successful", user.Sanitize())
}

// Logout closes the cookie session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := c.Cookie(utils.SessionCookieName); err != nil {
		utils.BadRequest(c, "No active session")
		return
	}

	c.SetCookie(
		utils.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)

	utils.Success(c, "Logout successful", nil)
}

// GetSession returns the currently authenticated staff member.
func (h *AuthHandler) GetSession(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Not logged in")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Session active", user.Sanitize())
}
