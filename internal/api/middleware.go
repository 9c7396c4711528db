package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/user"
)

// RequireVendor ensures the authenticated user holds a vendor account.
// It MUST be used after auth.AuthRequired middleware.
func RequireVendor(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// The token role claim can lag behind a role change, so the stored
		// record is authoritative.
		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if u.Role != user.RoleVendor {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: vendor account required"})
			return
		}

		c.Next()
	}
}
