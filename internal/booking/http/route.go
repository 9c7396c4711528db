package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Public Routes ===
	group.GET("/unavailable/:equipmentId", h.UnavailableDates)
	group.GET("/check-availability", h.CheckAvailability)
	group.POST("/track", h.Track)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("/vendor/:vendorId", h.ListByVendor)
		authed.GET("/user/:userId", h.ListByUser)
		authed.PUT("/status/:id", h.UpdateStatus)
		authed.PUT("/user/update/:id", h.Update)
		authed.PUT("/user/cancel/:id", h.Cancel)
	}
}
