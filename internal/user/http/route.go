package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires auth endpoints and user/vendor profile endpoints.
// Vendor profiles are regular user records exposed under /vendors.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	users := g.Group("/users")
	{
		users.GET("/:id", h.Get)
		users.PUT("/:id", authMiddleware, h.UpdateProfile)
	}

	vendors := g.Group("/vendors")
	{
		vendors.GET("/:id", h.Get)
		vendors.PUT("/:id", authMiddleware, h.UpdateProfile)
	}
}
