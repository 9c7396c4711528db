package http

import (
	"github.com/shopspring/decimal"
)

type CreateOrderBody struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Receipt string          `json:"receipt"`
}

type VerifyBody struct {
	OrderID   string `json:"order_id" binding:"required"`
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature"`

	EquipmentID int64           `json:"equipment_id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	PickupDate  string          `json:"pickup_date"`
	DropDate    string          `json:"drop_date"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}
