package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, vendorMiddleware gin.HandlerFunc) {
	group := g.Group("/equipments")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/search", h.Search)
	group.GET("/:id", h.Get)

	// === Vendor Routes ===
	vendor := group.Group("")
	vendor.Use(authMiddleware, vendorMiddleware)
	{
		vendor.POST("", h.Create)
		vendor.PUT("/:id", h.Update)
		vendor.DELETE("/:id", h.Delete)
	}
}
