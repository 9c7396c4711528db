package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	userHttp "github.com/eqprent/equipment-rental-backend/internal/user/http"
)

type CreateEquipmentBody struct {
	Name        string           `json:"name" binding:"required"`
	Type        string           `json:"type" binding:"required"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Quantity    int              `json:"quantity"`
	BaseAddress *string          `json:"base_address"`
	BaseLat     *float64         `json:"base_lat"`
	BaseLng     *float64         `json:"base_lng"`
	PerKmRate   *decimal.Decimal `json:"per_km_rate"`
	ImageURLs   []string         `json:"image_urls"`
}

type UpdateEquipmentBody struct {
	Name        *string          `json:"name"`
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	BaseAddress *string          `json:"base_address"`
	BaseLat     *float64         `json:"base_lat"`
	BaseLng     *float64         `json:"base_lng"`
	PerKmRate   *decimal.Decimal `json:"per_km_rate"`
	ImageURLs   []string         `json:"image_urls"`
}

type EquipmentResponse struct {
	ID          int64            `json:"id"`
	Vendor      userHttp.UserTag `json:"vendor"`
	CompanyName *string          `json:"company_name,omitempty"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Quantity    int              `json:"quantity"`
	BaseAddress *string          `json:"base_address,omitempty"`
	BaseLat     *float64         `json:"base_lat,omitempty"`
	BaseLng     *float64         `json:"base_lng,omitempty"`
	PerKmRate   decimal.Decimal  `json:"per_km_rate"`
	Images      []string         `json:"images"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewEquipmentResponse(e *equipment.Equipment, imageURL func(string) string) EquipmentResponse {
	images := make([]string, len(e.Images))
	for i, img := range e.Images {
		images[i] = imageURL(img)
	}
	return EquipmentResponse{
		ID:          e.ID,
		Vendor:      userHttp.UserTag{ID: e.VendorID, Name: e.VendorName},
		CompanyName: e.CompanyName,
		Name:        e.Name,
		Type:        e.Type,
		Description: e.Description,
		Price:       e.Price,
		Quantity:    e.Quantity,
		BaseAddress: e.BaseAddress,
		BaseLat:     e.BaseLat,
		BaseLng:     e.BaseLng,
		PerKmRate:   e.PerKmRate,
		Images:      images,
		CreatedAt:   e.CreatedAt,
	}
}
