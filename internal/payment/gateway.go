package payment

import (
	"context"
	"fmt"
	"net/http"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

var ErrGatewayUnavailable = apperror.New(http.StatusServiceUnavailable, "payment gateway is not configured")

// Order is a gateway order the client completes checkout against.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // smallest currency unit (paise)
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// Gateway creates payment orders with the upstream provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error)
}

type razorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}

	resp, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, apperror.External(err, "payment gateway order creation failed")
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return nil, apperror.External(fmt.Errorf("order response missing id: %v", resp), "payment gateway returned an invalid order")
	}

	return &Order{
		ID:       id,
		Amount:   amountPaise,
		Currency: "INR",
		KeyID:    g.keyID,
	}, nil
}
