package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/response"
	"github.com/eqprent/equipment-rental-backend/internal/transaction"
)

type Handler struct {
	service transaction.Service
}

func NewHandler(service transaction.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}
	if auth.GetUserID(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	items, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]TransactionResponse, len(items))
	for i, t := range items {
		resp[i] = NewTransactionResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": resp})
}
