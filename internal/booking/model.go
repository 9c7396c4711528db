package booking

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrEquipmentNotFound  = apperror.New(http.StatusNotFound, "equipment not found")
	ErrMissingFields      = apperror.New(http.StatusBadRequest, "missing required booking details")
	ErrInvalidDateRange   = apperror.New(http.StatusBadRequest, "drop date must not be before pickup date")
	ErrTravelCostRequired = apperror.New(http.StatusBadRequest, "transport cost must be computed before confirming booking")
	ErrFullyBooked        = apperror.New(http.StatusConflict, "equipment is fully booked for the selected dates")
	ErrConcurrentBooking  = apperror.New(http.StatusConflict, "booking conflict detected, please retry")
	ErrInvalidStatus      = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrTrackVerification  = apperror.New(http.StatusForbidden, "verification failed")
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Payment methods accepted at booking time. Anything unrecognized falls
// back to cash on delivery; this is a documented default, not an error.
const (
	PaymentCash         = "CASH"
	PaymentUPI          = "UPI"
	PaymentCard         = "CARD"
	PaymentBankTransfer = "BANK_TRANSFER"
)

// NormalizePaymentMethod upper-cases the given method and falls back to
// CASH when the value is not one of the accepted methods.
func NormalizePaymentMethod(method string) string {
	switch m := strings.ToUpper(strings.TrimSpace(method)); m {
	case PaymentCash, PaymentUPI, PaymentCard, PaymentBankTransfer:
		return m
	default:
		return PaymentCash
	}
}

// referencePrefix tags human-shareable booking lookup codes.
const referencePrefix = "BOOK-"

// FormatReference derives the reference code from the booking's record ID:
// the prefix plus the ID zero-padded to five digits. Larger IDs widen the
// code; padding never truncates.
func FormatReference(id int64) string {
	return fmt.Sprintf("%s%05d", referencePrefix, id)
}

// Booking reserves a quantity of equipment units over an inclusive date range.
type Booking struct {
	ID            int64
	EquipmentID   int64
	EquipmentName string
	UserID        int64
	VendorID      int64
	Name          string // contact name supplied at booking time
	Address       string
	PickupDate    time.Time
	DropDate      time.Time
	Quantity      int
	Status        Status
	TotalAmount   decimal.Decimal
	PaymentType   string
	ReferenceID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DateRange is an inclusive [Start, End] day interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Availability is the admission decision for a capacity check. Blocked
// lists the conflicting ranges when the request is rejected so callers can
// render a blocked-dates calendar.
type Availability struct {
	Available bool
	Blocked   []DateRange
}

// CapacityError is returned when an admission is rejected. It unwraps to
// ErrFullyBooked and carries the conflicting ranges.
type CapacityError struct {
	Blocked []DateRange
}

func (e *CapacityError) Error() string {
	return ErrFullyBooked.Message
}

func (e *CapacityError) Unwrap() error {
	return ErrFullyBooked
}
