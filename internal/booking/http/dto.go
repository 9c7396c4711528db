package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/booking"
)

type CreateBookingBody struct {
	EquipmentID   int64           `json:"equipment_id" binding:"required,min=1"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	PickupDate    string          `json:"pickup_date" binding:"required"`
	DropDate      string          `json:"drop_date" binding:"required"`
	Quantity      int             `json:"quantity"`
	TravelCost    decimal.Decimal `json:"travel_cost"`
	PaymentMethod string          `json:"payment_method"`
}

type UpdateBookingBody struct {
	PickupDate string `json:"pickup_date" binding:"required"`
	DropDate   string `json:"drop_date" binding:"required"`
	Quantity   int    `json:"quantity"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED pending confirmed cancelled"`
}

type TrackBookingBody struct {
	Reference  string `json:"reference" binding:"required"`
	PhoneLast4 string `json:"phone_last4" binding:"required,len=4,numeric"`
}

type BookingResponse struct {
	ID            int64           `json:"id"`
	ReferenceID   string          `json:"reference_id"`
	EquipmentID   int64           `json:"equipment_id"`
	EquipmentName string          `json:"equipment_name"`
	UserID        int64           `json:"user_id"`
	VendorID      int64           `json:"vendor_id"`
	Name          string          `json:"name,omitempty"`
	Address       string          `json:"address,omitempty"`
	PickupDate    string          `json:"pickup_date"`
	DropDate      string          `json:"drop_date"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentType   string          `json:"payment_type"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

const dateLayout = "2006-01-02"

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ReferenceID:   b.ReferenceID,
		EquipmentID:   b.EquipmentID,
		EquipmentName: b.EquipmentName,
		UserID:        b.UserID,
		VendorID:      b.VendorID,
		Name:          b.Name,
		Address:       b.Address,
		PickupDate:    b.PickupDate.Format(dateLayout),
		DropDate:      b.DropDate.Format(dateLayout),
		Quantity:      b.Quantity,
		Status:        string(b.Status),
		TotalAmount:   b.TotalAmount,
		PaymentType:   b.PaymentType,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewDateRangeResponses(ranges []booking.DateRange) []DateRangeResponse {
	out := make([]DateRangeResponse, len(ranges))
	for i, r := range ranges {
		out[i] = DateRangeResponse{
			Start: r.Start.Format(dateLayout),
			End:   r.End.Format(dateLayout),
		}
	}
	return out
}

// AvailabilityResponse answers a capacity probe. BlockedDates is only
// populated when the request cannot be admitted.
type AvailabilityResponse struct {
	Available    bool                `json:"available"`
	BlockedDates []DateRangeResponse `json:"blocked_dates,omitempty"`
}
