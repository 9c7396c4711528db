package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/files")
	group.Use(authMiddleware)
	{
		group.POST("/upload", h.Upload)
	}
}
