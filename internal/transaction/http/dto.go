package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/transaction"
)

type TransactionResponse struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	BookingID        *int64          `json:"booking_id,omitempty"`
	BookingReference *string         `json:"booking_reference,omitempty"`
	EquipmentName    *string         `json:"equipment_name,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	Method           string          `json:"method"`
	OrderID          string          `json:"order_id,omitempty"`
	PaymentID        string          `json:"payment_id,omitempty"`
	Reason           *string         `json:"reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func NewTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		UserID:           t.UserID,
		BookingID:        t.BookingID,
		BookingReference: t.BookingReference,
		EquipmentName:    t.EquipmentName,
		Amount:           t.Amount,
		Status:           t.Status,
		Method:           t.Method,
		OrderID:          t.OrderID,
		PaymentID:        t.PaymentID,
		Reason:           t.Reason,
		CreatedAt:        t.CreatedAt,
	}
}
