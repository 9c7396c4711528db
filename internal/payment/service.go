package payment

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/booking"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
	"github.com/eqprent/equipment-rental-backend/internal/transaction"
)

var (
	ErrMissingSignature   = apperror.New(http.StatusBadRequest, "payment signature is missing")
	ErrInvalidSignature   = apperror.New(http.StatusBadRequest, "payment signature verification failed")
	ErrMissingBookingData = apperror.New(http.StatusBadRequest, "payment is missing booking details")
	ErrInvalidAmount      = apperror.New(http.StatusBadRequest, "payment amount must be greater than zero")
)

// methodGateway tags transactions settled through the payment gateway.
const methodGateway = "RAZORPAY"

var paise = decimal.NewFromInt(100)

// VerifyRequest carries the gateway checkout result together with the
// booking the payment was made for.
type VerifyRequest struct {
	UserID      int64
	OrderID     string
	PaymentID   string
	Signature   string
	EquipmentID int64
	Name        string
	Address     string
	PickupDate  time.Time
	DropDate    time.Time
	Quantity    int
	Amount      decimal.Decimal
}

// Service handles gateway order creation and payment verification. Every
// verification attempt, accepted or rejected, leaves a transaction row.
type Service interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*Order, error)
	Verify(ctx context.Context, req VerifyRequest) (*booking.Booking, error)
}

type service struct {
	gateway    Gateway
	keySecret  string
	bookingSvc booking.Service
	txnSvc     transaction.Service
}

func NewService(gateway Gateway, keySecret string, bookingSvc booking.Service, txnSvc transaction.Service) Service {
	return &service{
		gateway:    gateway,
		keySecret:  keySecret,
		bookingSvc: bookingSvc,
		txnSvc:     txnSvc,
	}
}

func (s *service) CreateOrder(ctx context.Context, amount decimal.Decimal, receipt string) (*Order, error) {
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if receipt == "" {
		receipt = "rcpt_" + uuid.NewString()
	}

	amountPaise := amount.Mul(paise).Round(0).IntPart()
	return s.gateway.CreateOrder(ctx, amountPaise, receipt)
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (*booking.Booking, error) {
	if s.gateway == nil {
		return nil, ErrGatewayUnavailable
	}

	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		s.recordFailure(ctx, req, transaction.ReasonMissingSignature)
		return nil, ErrMissingSignature
	}
	if !VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.keySecret) {
		s.recordFailure(ctx, req, transaction.ReasonInvalidSignature)
		return nil, ErrInvalidSignature
	}
	if req.EquipmentID == 0 || req.PickupDate.IsZero() || req.DropDate.IsZero() {
		s.recordFailure(ctx, req, transaction.ReasonMissingBookingData)
		return nil, ErrMissingBookingData
	}

	b, err := s.bookingSvc.CreateConfirmed(ctx, booking.ConfirmedRequest{
		UserID:      req.UserID,
		EquipmentID: req.EquipmentID,
		Name:        req.Name,
		Address:     req.Address,
		PickupDate:  req.PickupDate,
		DropDate:    req.DropDate,
		Quantity:    req.Quantity,
		Total:       req.Amount,
	})
	if err != nil {
		if errors.Is(err, booking.ErrEquipmentNotFound) {
			s.recordFailure(ctx, req, transaction.ReasonInvalidEquipment)
		} else {
			s.recordFailure(ctx, req, "")
		}
		return nil, err
	}

	s.record(ctx, req, &transaction.Transaction{
		UserID:    req.UserID,
		BookingID: &b.ID,
		Amount:    req.Amount,
		Status:    transaction.StatusSuccess,
		Method:    methodGateway,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
	})

	return b, nil
}

func (s *service) recordFailure(ctx context.Context, req VerifyRequest, reason string) {
	t := &transaction.Transaction{
		UserID:    req.UserID,
		Amount:    req.Amount,
		Status:    transaction.StatusFailed,
		Method:    methodGateway,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
	}
	if reason != "" {
		t.Reason = &reason
	}
	s.record(ctx, req, t)
}

// record persists the audit row. Audit failures are logged, never
// propagated: the verification verdict stands on its own.
func (s *service) record(ctx context.Context, req VerifyRequest, t *transaction.Transaction) {
	if err := s.txnSvc.Record(ctx, t); err != nil {
		log.Printf("record payment transaction for order %s failed: %v", req.OrderID, err)
	}
}
