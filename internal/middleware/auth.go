package middleware

import (
	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware authenticates requests through the clinic_session
// cookie set at login.
func SessionAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.SessionCookieName)
		if err != nil || tokenString == "" {
			utils.Unauthorized(c, "Not logged in")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(tokenString, cfg.SessionSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid session: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* SessionAuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			utils.InternalServerError(c, "User role not found in context. SessionAuthMiddleware might be missing.")
			c.Abort()
			return
		}

		role, ok := userRole.(models.Role)
		if !ok {
			utils.InternalServerError(c, "User role in context is not of expected type.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// Helper function to get user role from context
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}
