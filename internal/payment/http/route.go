package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/payment")
	group.Use(authMiddleware)
	{
		group.POST("/order", h.CreateOrder)
		group.POST("/verify", h.Verify)
	}
}
