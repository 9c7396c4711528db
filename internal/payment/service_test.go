package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eqprent/equipment-rental-backend/internal/booking"
	"github.com/eqprent/equipment-rental-backend/internal/transaction"
)

// ---- fakes ----

type fakeGateway struct {
	lastAmount  int64
	lastReceipt string
	err         error
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountPaise
	f.lastReceipt = receipt
	return &Order{ID: "order_test", Amount: amountPaise, Currency: "INR", KeyID: "key_test"}, nil
}

type fakeBookingService struct {
	booking.Service

	created *booking.ConfirmedRequest
	err     error
}

func (f *fakeBookingService) CreateConfirmed(ctx context.Context, req booking.ConfirmedRequest) (*booking.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	return &booking.Booking{
		ID:          42,
		EquipmentID: req.EquipmentID,
		UserID:      req.UserID,
		Status:      booking.StatusConfirmed,
		TotalAmount: req.Total,
		PaymentType: booking.PaymentCard,
		ReferenceID: "BOOK-00042",
	}, nil
}

type fakeTransactionService struct {
	recorded []*transaction.Transaction
}

func (f *fakeTransactionService) Record(ctx context.Context, t *transaction.Transaction) error {
	f.recorded = append(f.recorded, t)
	return nil
}

func (f *fakeTransactionService) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	return nil, transaction.ErrNotFound
}

func (f *fakeTransactionService) ListByUser(ctx context.Context, userID int64) ([]*transaction.Transaction, error) {
	return f.recorded, nil
}

// ---- fixtures ----

const testSecret = "test-key-secret"

func testDay(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func verifyReq(t *testing.T) VerifyRequest {
	t.Helper()
	return VerifyRequest{
		UserID:      7,
		OrderID:     "order_abc",
		PaymentID:   "pay_xyz",
		Signature:   sign("order_abc", "pay_xyz", testSecret),
		EquipmentID: 1,
		Name:        "Asha",
		Address:     "12 MG Road",
		PickupDate:  testDay(5),
		DropDate:    testDay(6),
		Quantity:    1,
		Amount:      decimal.NewFromInt(1212),
	}
}

func newTestService() (Service, *fakeBookingService, *fakeTransactionService) {
	bookingSvc := &fakeBookingService{}
	txnSvc := &fakeTransactionService{}
	svc := NewService(&fakeGateway{}, testSecret, bookingSvc, txnSvc)
	return svc, bookingSvc, txnSvc
}

// ---- tests ----

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("converts rupees to paise", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := NewService(gateway, testSecret, &fakeBookingService{}, &fakeTransactionService{})

		order, err := svc.CreateOrder(ctx, decimal.NewFromFloat(1212.50), "rcpt-1")
		require.NoError(t, err)

		assert.Equal(t, int64(121250), order.Amount)
		assert.Equal(t, "rcpt-1", gateway.lastReceipt)
	})

	t.Run("generates a receipt when none is given", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := NewService(gateway, testSecret, &fakeBookingService{}, &fakeTransactionService{})

		_, err := svc.CreateOrder(ctx, decimal.NewFromInt(500), "")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(gateway.lastReceipt, "rcpt_"))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateOrder(ctx, decimal.Zero, "rcpt-2")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unconfigured gateway", func(t *testing.T) {
		svc := NewService(nil, "", &fakeBookingService{}, &fakeTransactionService{})
		_, err := svc.CreateOrder(ctx, decimal.NewFromInt(100), "rcpt-3")
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a confirmed booking and records success", func(t *testing.T) {
		svc, bookingSvc, txnSvc := newTestService()

		b, err := svc.Verify(ctx, verifyReq(t))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusConfirmed, b.Status)
		require.NotNil(t, bookingSvc.created)
		assert.True(t, bookingSvc.created.Total.Equal(decimal.NewFromInt(1212)))

		require.Len(t, txnSvc.recorded, 1)
		rec := txnSvc.recorded[0]
		assert.Equal(t, transaction.StatusSuccess, rec.Status)
		assert.Equal(t, "RAZORPAY", rec.Method)
		require.NotNil(t, rec.BookingID)
		assert.Equal(t, int64(42), *rec.BookingID)
		assert.Nil(t, rec.Reason)
	})

	t.Run("missing signature recorded as failed", func(t *testing.T) {
		svc, bookingSvc, txnSvc := newTestService()

		req := verifyReq(t)
		req.Signature = ""
		_, err := svc.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrMissingSignature)

		assert.Nil(t, bookingSvc.created)
		require.Len(t, txnSvc.recorded, 1)
		rec := txnSvc.recorded[0]
		assert.Equal(t, transaction.StatusFailed, rec.Status)
		require.NotNil(t, rec.Reason)
		assert.Equal(t, transaction.ReasonMissingSignature, *rec.Reason)
		assert.Nil(t, rec.BookingID)
	})

	t.Run("tampered signature recorded as failed", func(t *testing.T) {
		svc, _, txnSvc := newTestService()

		req := verifyReq(t)
		req.Signature = sign("order_abc", "pay_other", testSecret)
		_, err := svc.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidSignature)

		require.Len(t, txnSvc.recorded, 1)
		require.NotNil(t, txnSvc.recorded[0].Reason)
		assert.Equal(t, transaction.ReasonInvalidSignature, *txnSvc.recorded[0].Reason)
	})

	t.Run("missing booking details recorded after signature passes", func(t *testing.T) {
		svc, _, txnSvc := newTestService()

		req := verifyReq(t)
		req.EquipmentID = 0
		_, err := svc.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrMissingBookingData)

		require.Len(t, txnSvc.recorded, 1)
		require.NotNil(t, txnSvc.recorded[0].Reason)
		assert.Equal(t, transaction.ReasonMissingBookingData, *txnSvc.recorded[0].Reason)
	})

	t.Run("unknown equipment recorded as failed", func(t *testing.T) {
		bookingSvc := &fakeBookingService{err: booking.ErrEquipmentNotFound}
		txnSvc := &fakeTransactionService{}
		svc := NewService(&fakeGateway{}, testSecret, bookingSvc, txnSvc)

		_, err := svc.Verify(ctx, verifyReq(t))
		assert.ErrorIs(t, err, booking.ErrEquipmentNotFound)

		require.Len(t, txnSvc.recorded, 1)
		require.NotNil(t, txnSvc.recorded[0].Reason)
		assert.Equal(t, transaction.ReasonInvalidEquipment, *txnSvc.recorded[0].Reason)
	})

	t.Run("capacity conflict still audited", func(t *testing.T) {
		bookingSvc := &fakeBookingService{err: booking.ErrFullyBooked}
		txnSvc := &fakeTransactionService{}
		svc := NewService(&fakeGateway{}, testSecret, bookingSvc, txnSvc)

		_, err := svc.Verify(ctx, verifyReq(t))
		assert.ErrorIs(t, err, booking.ErrFullyBooked)

		require.Len(t, txnSvc.recorded, 1)
		assert.Equal(t, transaction.StatusFailed, txnSvc.recorded[0].Status)
		assert.Nil(t, txnSvc.recorded[0].Reason)
	})
}
