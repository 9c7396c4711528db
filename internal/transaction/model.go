package transaction

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "transaction not found")

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Failure reasons recorded when a gateway payment cannot be accepted.
const (
	ReasonMissingSignature   = "MISSING_SIGNATURE"
	ReasonInvalidSignature   = "INVALID_SIGNATURE"
	ReasonMissingBookingData = "MISSING_BOOKING_DATA"
	ReasonInvalidEquipment   = "INVALID_EQUIPMENT"
)

// Transaction is an audit row for every payment attempt, successful or
// not. BookingID is set only when a booking was created for the payment.
type Transaction struct {
	ID        int64
	UserID    int64
	BookingID *int64
	Amount    decimal.Decimal
	Status    string
	Method    string
	OrderID   string
	PaymentID string
	Reason    *string
	CreatedAt time.Time

	// BookingReference and EquipmentName are joined in for list responses.
	BookingReference *string
	EquipmentName    *string
}
