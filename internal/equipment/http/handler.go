package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
	"github.com/eqprent/equipment-rental-backend/internal/booking"
	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/request"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/response"
)

type Handler struct {
	service       equipment.Service
	bookingSvc    booking.Service
	publicBaseURL string
}

func NewHandler(service equipment.Service, bookingSvc booking.Service, publicBaseURL string) *Handler {
	return &Handler{
		service:       service,
		bookingSvc:    bookingSvc,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// imageURL absolutizes stored upload paths against the public base URL.
// Already-absolute URLs pass through unchanged.
func (h *Handler) imageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return h.publicBaseURL + path
}

func (h *Handler) toResponse(e *equipment.Equipment) EquipmentResponse {
	return NewEquipmentResponse(e, h.imageURL)
}

// List serves the public catalog. When a date range is supplied, items that
// are fully booked anywhere within it are removed from the page.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	vendorID, _ := strconv.ParseInt(c.Query("vendor_id"), 10, 64)

	filter := equipment.Filter{
		VendorID:     vendorID,
		NameContains: c.Query("name"),
		Page:         page,
		PageSize:     pageSize,
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := request.ParseDate(fromStr)
		if err != nil {
			response.Error(c, err)
			return
		}
		to, err := request.ParseDate(toStr)
		if err != nil {
			response.Error(c, err)
			return
		}

		full, err := h.bookingSvc.FullyBookedEquipment(c.Request.Context(), from, to)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.ExcludeIDs = full
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]EquipmentResponse, len(items))
	for i, e := range items {
		resp[i] = h.toResponse(e)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(resp, page, pageSize, total))
}

func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing search query"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.service.Search(c.Request.Context(), q, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]EquipmentResponse, len(items))
	for i, e := range items {
		resp[i] = h.toResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "equipments": resp})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "equipment": h.toResponse(e)})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEquipmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	e, err := h.service.Create(c.Request.Context(), equipment.CreateRequest{
		VendorID:    auth.GetUserID(c),
		Name:        body.Name,
		Type:        body.Type,
		Description: body.Description,
		Price:       body.Price,
		Quantity:    body.Quantity,
		BaseAddress: body.BaseAddress,
		BaseLat:     body.BaseLat,
		BaseLng:     body.BaseLng,
		PerKmRate:   body.PerKmRate,
		ImageURLs:   body.ImageURLs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "equipment": h.toResponse(e)})
}

// ownedEquipment loads the item and verifies the caller is its vendor.
func (h *Handler) ownedEquipment(c *gin.Context) (*equipment.Equipment, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment ID"})
		return nil, false
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if e.VendorID != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return nil, false
	}
	return e, true
}

func (h *Handler) Update(c *gin.Context) {
	e, ok := h.ownedEquipment(c)
	if !ok {
		return
	}

	var body UpdateEquipmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), e.ID, equipment.UpdateRequest{
		Name:        body.Name,
		Type:        body.Type,
		Description: body.Description,
		Price:       body.Price,
		Quantity:    body.Quantity,
		BaseAddress: body.BaseAddress,
		BaseLat:     body.BaseLat,
		BaseLng:     body.BaseLng,
		PerKmRate:   body.PerKmRate,
		ImageURLs:   body.ImageURLs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "equipment": h.toResponse(updated)})
}

func (h *Handler) Delete(c *gin.Context) {
	e, ok := h.ownedEquipment(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), e.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
