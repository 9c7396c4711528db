package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	bookingHttp "github.com/eqprent/equipment-rental-backend/internal/booking/http"
	"github.com/eqprent/equipment-rental-backend/internal/payment"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/request"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var body CreateOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), body.Amount, body.Receipt)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// parseOptionalDate treats an absent value as zero time; the service
// decides whether the booking details are complete.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return request.ParseDate(s)
}

func (h *Handler) Verify(c *gin.Context) {
	var body VerifyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pickup, err := parseOptionalDate(body.PickupDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	drop, err := parseOptionalDate(body.DropDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Verify(c.Request.Context(), payment.VerifyRequest{
		UserID:      auth.GetUserID(c),
		OrderID:     body.OrderID,
		PaymentID:   body.PaymentID,
		Signature:   body.Signature,
		EquipmentID: body.EquipmentID,
		Name:        body.Name,
		Address:     body.Address,
		PickupDate:  pickup,
		DropDate:    drop,
		Quantity:    body.Quantity,
		Amount:      body.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": bookingHttp.NewBookingResponse(b)})
}
