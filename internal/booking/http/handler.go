package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/booking"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/request"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return id, true
}

// conflict writes the fully-booked response, attaching the conflicting
// date ranges when the error carries them.
func conflict(c *gin.Context, err error) bool {
	var capErr *booking.CapacityError
	if !errors.As(err, &capErr) {
		return false
	}
	c.JSON(http.StatusConflict, gin.H{
		"error":         err.Error(),
		"blocked_dates": NewDateRangeResponses(capErr.Blocked),
	})
	return true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	pickup, err := request.ParseDate(body.PickupDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	drop, err := request.ParseDate(body.DropDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:        auth.GetUserID(c),
		EquipmentID:   body.EquipmentID,
		Name:          body.Name,
		Address:       body.Address,
		PickupDate:    pickup,
		DropDate:      drop,
		Quantity:      body.Quantity,
		TravelCost:    body.TravelCost,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		if conflict(c, err) {
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": NewBookingResponse(b)})
}

func (h *Handler) ListByVendor(c *gin.Context) {
	vendorID, ok := parseID(c, "vendorId")
	if !ok {
		return
	}
	if auth.GetUserID(c) != vendorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	bookings, err := h.service.ListByVendor(c.Request.Context(), vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": items})
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	if auth.GetUserID(c) != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	bookings, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": items})
}

// UpdateStatus lets the vendor who owns the equipment confirm or cancel a
// booking.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if b.VendorID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(strings.ToUpper(body.Status)))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": NewBookingResponse(updated)})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pickup, err := request.ParseDate(body.PickupDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	drop, err := request.ParseDate(body.DropDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if b.UserID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, booking.UpdateRequest{
		PickupDate: pickup,
		DropDate:   drop,
		Quantity:   body.Quantity,
	})
	if err != nil {
		if conflict(c, err) {
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": NewBookingResponse(updated)})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if b.UserID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": NewBookingResponse(cancelled)})
}

func (h *Handler) UnavailableDates(c *gin.Context) {
	equipmentID, ok := parseID(c, "equipmentId")
	if !ok {
		return
	}

	ranges, err := h.service.UnavailableDates(c.Request.Context(), equipmentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "unavailable_dates": NewDateRangeResponses(ranges)})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	equipmentID, err := strconv.ParseInt(c.Query("equipment_id"), 10, 64)
	if err != nil || equipmentID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment_id"})
		return
	}

	pickup, err := request.ParseDate(c.Query("pickup_date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	drop, err := request.ParseDate(c.Query("drop_date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	quantity, _ := strconv.Atoi(c.DefaultQuery("quantity", "1"))

	avail, err := h.service.CheckCapacity(c.Request.Context(), equipmentID, pickup, drop, quantity, 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := AvailabilityResponse{Available: avail.Available}
	if !avail.Available {
		resp.BlockedDates = NewDateRangeResponses(avail.Blocked)
	}
	c.JSON(http.StatusOK, resp)
}

// Track is the public lookup for customers without an account session: a
// reference code plus the last four digits of the phone number on file.
func (h *Handler) Track(c *gin.Context) {
	var body TrackBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.Track(c.Request.Context(), strings.ToUpper(strings.TrimSpace(body.Reference)), body.PhoneLast4)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": NewBookingResponse(b)})
}
