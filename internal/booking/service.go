package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	"github.com/eqprent/equipment-rental-backend/internal/notify"
	"github.com/eqprent/equipment-rental-backend/internal/user"
)

type CreateRequest struct {
	UserID        int64
	EquipmentID   int64
	Name          string
	Address       string
	PickupDate    time.Time
	DropDate      time.Time
	Quantity      int
	TravelCost    decimal.Decimal
	PaymentMethod string
}

// ConfirmedRequest creates a booking that has already been paid through the
// payment gateway: it starts CONFIRMED with the gateway-charged total.
type ConfirmedRequest struct {
	UserID      int64
	EquipmentID int64
	Name        string
	Address     string
	PickupDate  time.Time
	DropDate    time.Time
	Quantity    int
	Total       decimal.Decimal
}

type UpdateRequest struct {
	PickupDate time.Time
	DropDate   time.Time
	Quantity   int
}

// Service is the availability and pricing engine. Booking creation,
// modification, availability probing and catalog filtering all share its
// single admission rule and pricing formula.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	CreateConfirmed(ctx context.Context, req ConfirmedRequest) (*Booking, error)
	GetByID(ctx context.Context, id int64) (*Booking, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Booking, error)
	Cancel(ctx context.Context, id int64) (*Booking, error)

	// Track looks a booking up by reference code, verifying the caller with
	// the last four digits of the renter's phone number.
	Track(ctx context.Context, ref, phoneLast4 string) (*Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]*Booking, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*Booking, error)

	// CheckCapacity decides admission for the requested quantity over
	// [pickup, drop]. excludeID skips a booking being edited; pass 0
	// otherwise. Requested quantities below 1 default to a single unit.
	CheckCapacity(ctx context.Context, equipmentID int64, pickup, drop time.Time, requested int, excludeID int64) (*Availability, error)

	// UnavailableDates lists the active booking ranges of an equipment item
	// for calendar blocking.
	UnavailableDates(ctx context.Context, equipmentID int64) ([]DateRange, error)

	// FullyBookedEquipment returns the equipment IDs whose booked units meet
	// or exceed capacity anywhere in [from, to], so listings can hide them.
	FullyBookedEquipment(ctx context.Context, from, to time.Time) ([]int64, error)
}

type service struct {
	repo     Repository
	equipSvc equipment.Service
	userSvc  user.Service
	mailer   notify.Mailer
}

func NewService(repo Repository, equipSvc equipment.Service, userSvc user.Service, mailer notify.Mailer) Service {
	return &service{
		repo:     repo,
		equipSvc: equipSvc,
		userSvc:  userSvc,
		mailer:   mailer,
	}
}

// normalizeQuantity applies the unified default: an absent or non-positive
// quantity means one unit, on every path.
func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func (s *service) getEquipment(ctx context.Context, id int64) (*equipment.Equipment, error) {
	eq, err := s.equipSvc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipment.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return eq, nil
}

// admit applies the capacity rule against the overlap set read through repo.
// It must be called with a transaction-bound repository when followed by a
// write.
func (s *service) admit(ctx context.Context, repo Repository, eq *equipment.Equipment, pickup, drop time.Time, requested int, excludeID int64) error {
	overlapping, err := repo.ListOverlapping(ctx, eq.ID, pickup, drop, excludeID)
	if err != nil {
		return err
	}

	capacity := eq.Quantity
	if capacity < 1 {
		capacity = 1
	}

	booked := BookedUnits(overlapping, pickup, drop, excludeID)
	if booked+requested > capacity {
		return &CapacityError{Blocked: BlockedRanges(overlapping, pickup, drop, excludeID)}
	}
	return nil
}

func (s *service) CheckCapacity(ctx context.Context, equipmentID int64, pickup, drop time.Time, requested int, excludeID int64) (*Availability, error) {
	if drop.Before(pickup) {
		return nil, ErrInvalidDateRange
	}

	eq, err := s.getEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	err = s.admit(ctx, s.repo, eq, pickup, drop, normalizeQuantity(requested), excludeID)
	if err != nil {
		var capErr *CapacityError
		if errors.As(err, &capErr) {
			return &Availability{Available: false, Blocked: capErr.Blocked}, nil
		}
		return nil, err
	}
	return &Availability{Available: true}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.EquipmentID == 0 || req.PickupDate.IsZero() || req.DropDate.IsZero() {
		return nil, ErrMissingFields
	}
	if req.DropDate.Before(req.PickupDate) {
		return nil, ErrInvalidDateRange
	}

	eq, err := s.getEquipment(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	// Bookings cannot be confirmed without a priced logistics leg.
	if req.TravelCost.LessThanOrEqual(decimal.Zero) {
		return nil, ErrTravelCostRequired
	}

	qty := normalizeQuantity(req.Quantity)
	quote := ComputeTotal(eq.Price, req.PickupDate, req.DropDate, qty, req.TravelCost)

	b := &Booking{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		UserID:        req.UserID,
		VendorID:      eq.VendorID,
		Name:          req.Name,
		Address:       req.Address,
		PickupDate:    req.PickupDate,
		DropDate:      req.DropDate,
		Quantity:      qty,
		Status:        StatusPending,
		TotalAmount:   quote.Total,
		PaymentType:   NormalizePaymentMethod(req.PaymentMethod),
	}

	if err := s.insertAdmitted(ctx, eq, b); err != nil {
		return nil, err
	}

	s.sendBookingMail(ctx, b)

	return b, nil
}

func (s *service) CreateConfirmed(ctx context.Context, req ConfirmedRequest) (*Booking, error) {
	if req.EquipmentID == 0 || req.PickupDate.IsZero() || req.DropDate.IsZero() {
		return nil, ErrMissingFields
	}
	if req.DropDate.Before(req.PickupDate) {
		return nil, ErrInvalidDateRange
	}

	eq, err := s.getEquipment(ctx, req.EquipmentID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		EquipmentID:   eq.ID,
		EquipmentName: eq.Name,
		UserID:        req.UserID,
		VendorID:      eq.VendorID,
		Name:          req.Name,
		Address:       req.Address,
		PickupDate:    req.PickupDate,
		DropDate:      req.DropDate,
		Quantity:      normalizeQuantity(req.Quantity),
		Status:        StatusConfirmed,
		TotalAmount:   req.Total,
		PaymentType:   PaymentCard,
	}

	if err := s.insertAdmitted(ctx, eq, b); err != nil {
		return nil, err
	}

	s.sendBookingMail(ctx, b)

	return b, nil
}

// insertAdmitted runs the admission check, the insert and the two-phase
// reference-code assignment in one serializable transaction. The reference
// code is a pure function of the generated identifier, so it can only be
// written after the insert returns the ID.
func (s *service) insertAdmitted(ctx context.Context, eq *equipment.Equipment, b *Booking) error {
	return s.repo.InTx(ctx, func(txRepo Repository) error {
		if err := s.admit(ctx, txRepo, eq, b.PickupDate, b.DropDate, b.Quantity, 0); err != nil {
			return err
		}
		if err := txRepo.Create(ctx, b); err != nil {
			return err
		}
		b.ReferenceID = FormatReference(b.ID)
		return txRepo.SetReference(ctx, b.ID, b.ReferenceID)
	})
}

func (s *service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Booking, error) {
	if req.PickupDate.IsZero() || req.DropDate.IsZero() {
		return nil, ErrMissingFields
	}
	if req.DropDate.Before(req.PickupDate) {
		return nil, ErrInvalidDateRange
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	eq, err := s.getEquipment(ctx, b.EquipmentID)
	if err != nil {
		return nil, err
	}

	qty := normalizeQuantity(req.Quantity)

	err = s.repo.InTx(ctx, func(txRepo Repository) error {
		if err := s.admit(ctx, txRepo, eq, req.PickupDate, req.DropDate, qty, b.ID); err != nil {
			return err
		}

		// Transport is priced once at creation and not re-applied when dates
		// change; only the rental term is recomputed.
		quote := ComputeTotal(eq.Price, req.PickupDate, req.DropDate, qty, decimal.Zero)

		b.PickupDate = req.PickupDate
		b.DropDate = req.DropDate
		b.Quantity = qty
		b.TotalAmount = quote.Total
		// Any date or quantity change requires vendor re-approval.
		b.Status = StatusPending

		return txRepo.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status Status) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Track(ctx context.Context, ref, phoneLast4 string) (*Booking, error) {
	if ref == "" || phoneLast4 == "" {
		return nil, ErrMissingFields
	}

	b, err := s.repo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	u, err := s.userSvc.GetByID(ctx, b.UserID)
	if err != nil {
		return nil, ErrTrackVerification
	}
	if u.Phone == nil || !strings.HasSuffix(*u.Phone, phoneLast4) {
		return nil, ErrTrackVerification
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id int64) (*Booking, error) {
	// Cancellation is a status change, never a delete, and is idempotent:
	// cancelling an already-cancelled booking succeeds.
	if err := s.repo.SetStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListByVendor(ctx context.Context, vendorID int64) ([]*Booking, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *service) UnavailableDates(ctx context.Context, equipmentID int64) ([]DateRange, error) {
	if _, err := s.getEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.repo.ActiveRanges(ctx, equipmentID)
}

func (s *service) FullyBookedEquipment(ctx context.Context, from, to time.Time) ([]int64, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	overlapping, err := s.repo.ListOverlappingAll(ctx, from, to)
	if err != nil {
		return nil, err
	}

	bookedByEquipment := make(map[int64]int)
	for _, b := range overlapping {
		bookedByEquipment[b.EquipmentID] += unitCount(b)
	}
	if len(bookedByEquipment) == 0 {
		return nil, nil
	}

	quantities, err := s.equipSvc.Quantities(ctx)
	if err != nil {
		return nil, err
	}

	var full []int64
	for equipmentID, booked := range bookedByEquipment {
		capacity := quantities[equipmentID]
		if capacity < 1 {
			capacity = 1
		}
		if booked >= capacity {
			full = append(full, equipmentID)
		}
	}
	sort.Slice(full, func(i, j int) bool { return full[i] < full[j] })

	return full, nil
}

// sendBookingMail notifies the renter that the booking was recorded.
// Email is best effort: failures are logged and never fail the booking.
func (s *service) sendBookingMail(ctx context.Context, b *Booking) {
	if s.mailer == nil {
		return
	}

	u, err := s.userSvc.GetByID(ctx, b.UserID)
	if err != nil {
		log.Printf("booking mail: lookup user %d failed: %v", b.UserID, err)
		return
	}

	subject := fmt.Sprintf("Booking %s received", b.ReferenceID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking %s for %s from %s to %s has been recorded.\nTotal amount: %s\n\nThe EqpRent Team",
		u.Name, b.ReferenceID, b.EquipmentName,
		b.PickupDate.Format("2006-01-02"), b.DropDate.Format("2006-01-02"),
		b.TotalAmount.StringFixed(2),
	)

	if err := s.mailer.Send(ctx, u.Email, u.Name, subject, body); err != nil {
		log.Printf("booking mail to %s failed: %v", u.Email, err)
	}
}
