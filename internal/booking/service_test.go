package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eqprent/equipment-rental-backend/internal/equipment"
	"github.com/eqprent/equipment-rental-backend/internal/notify"
	"github.com/eqprent/equipment-rental-backend/internal/user"
)

// ---- fakes ----

type fakeRepo struct {
	bookings map[int64]*Booking
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int64]*Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, b *Booking) error {
	r.nextID++
	b.ID = r.nextID
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ReferenceID == ref {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, id int64, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) SetReference(ctx context.Context, id int64, ref string) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.ReferenceID = ref
	return nil
}

func (r *fakeRepo) ListOverlapping(ctx context.Context, equipmentID int64, from, to time.Time, excludeID int64) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.EquipmentID != equipmentID || b.Status == StatusCancelled {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !Overlaps(from, to, b.PickupDate, b.DropDate) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) ListOverlappingAll(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.Status == StatusCancelled || !Overlaps(from, to, b.PickupDate, b.DropDate) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) ActiveRanges(ctx context.Context, equipmentID int64) ([]DateRange, error) {
	var out []DateRange
	for _, b := range r.bookings {
		if b.EquipmentID != equipmentID || b.Status == StatusCancelled {
			continue
		}
		out = append(out, DateRange{Start: b.PickupDate, End: b.DropDate})
	}
	return out, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID int64) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByVendor(ctx context.Context, vendorID int64) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.VendorID == vendorID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) InTx(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

type fakeEquipmentService struct {
	items map[int64]*equipment.Equipment
}

func (f *fakeEquipmentService) Create(ctx context.Context, req equipment.CreateRequest) (*equipment.Equipment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEquipmentService) GetByID(ctx context.Context, id int64) (*equipment.Equipment, error) {
	e, ok := f.items[id]
	if !ok {
		return nil, equipment.ErrNotFound
	}
	return e, nil
}

func (f *fakeEquipmentService) List(ctx context.Context, filter equipment.Filter) ([]*equipment.Equipment, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeEquipmentService) Update(ctx context.Context, id int64, req equipment.UpdateRequest) (*equipment.Equipment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEquipmentService) Delete(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}

func (f *fakeEquipmentService) Search(ctx context.Context, q string, limit int) ([]*equipment.Equipment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeEquipmentService) Quantities(ctx context.Context) (map[int64]int, error) {
	out := make(map[int64]int, len(f.items))
	for id, e := range f.items {
		out[id] = e.Quantity
	}
	return out, nil
}

type fakeUserService struct {
	users map[int64]*user.User
}

func (f *fakeUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, id int64, req user.UpdateProfileRequest) (*user.User, error) {
	return nil, errors.New("not implemented")
}

// ---- fixtures ----

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	equipSvc := &fakeEquipmentService{items: map[int64]*equipment.Equipment{
		1: {ID: 1, VendorID: 100, Name: "Excavator", Price: decimal.NewFromInt(1000), Quantity: 2},
		2: {ID: 2, VendorID: 100, Name: "Crane", Price: decimal.NewFromInt(500), Quantity: 3},
	}}
	userSvc := &fakeUserService{users: map[int64]*user.User{
		7: {ID: 7, Name: "Asha", Email: "asha@example.com", Phone: strPtr("+919876543210")},
	}}

	return NewService(repo, equipSvc, userSvc, notify.NoopMailer{}), repo
}

func createReq(quantity int) CreateRequest {
	return CreateRequest{
		UserID:        7,
		EquipmentID:   1,
		Name:          "Asha",
		Address:       "12 MG Road",
		PickupDate:    day(5),
		DropDate:      day(6),
		Quantity:      quantity,
		TravelCost:    decimal.NewFromInt(200),
		PaymentMethod: "upi",
	}
}

// ---- tests ----

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("prices and persists the booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		b, err := svc.Create(ctx, createReq(1))
		require.NoError(t, err)

		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, int64(100), b.VendorID)
		assert.Equal(t, "Excavator", b.EquipmentName)
		assert.Equal(t, PaymentUPI, b.PaymentType)
		assert.Equal(t, "BOOK-00001", b.ReferenceID)
		assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(1212)), "total = %s", b.TotalAmount)
	})

	t.Run("zero quantity defaults to one unit", func(t *testing.T) {
		svc, _ := newTestService(t)

		b, err := svc.Create(ctx, createReq(0))
		require.NoError(t, err)
		assert.Equal(t, 1, b.Quantity)
	})

	t.Run("requires a travel cost", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq(1)
		req.TravelCost = decimal.Zero
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrTravelCostRequired)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq(1)
		req.PickupDate, req.DropDate = day(8), day(5)
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("rejects unknown equipment", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq(1)
		req.EquipmentID = 99
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrEquipmentNotFound)
	})

	t.Run("rejects when capacity is exhausted", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.Create(ctx, createReq(2))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq(1))
		assert.ErrorIs(t, err, ErrFullyBooked)

		var capErr *CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, []DateRange{{Start: day(5), End: day(6)}}, capErr.Blocked)

		// The rejected booking must not be persisted.
		assert.Len(t, repo.bookings, 1)
	})

	t.Run("admits exactly up to capacity", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq(1))
		require.NoError(t, err)

		// Second unit fits; a third does not exist.
		_, err = svc.Create(ctx, createReq(1))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq(1))
		assert.ErrorIs(t, err, ErrFullyBooked)
	})

	t.Run("cancelled bookings release capacity", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.Create(ctx, createReq(2))
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, first.ID)
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq(2))
		assert.NoError(t, err)
	})
}

func TestServiceCreateConfirmed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	b, err := svc.CreateConfirmed(ctx, ConfirmedRequest{
		UserID:      7,
		EquipmentID: 1,
		PickupDate:  day(5),
		DropDate:    day(6),
		Quantity:    1,
		Total:       decimal.NewFromInt(1212),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, PaymentCard, b.PaymentType)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(1212)))
	assert.Equal(t, "BOOK-00001", b.ReferenceID)
}

func TestServiceCheckCapacity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, createReq(2))
	require.NoError(t, err)

	t.Run("reports blocked ranges when full", func(t *testing.T) {
		avail, err := svc.CheckCapacity(ctx, 1, day(5), day(6), 1, 0)
		require.NoError(t, err)
		assert.False(t, avail.Available)
		assert.Equal(t, []DateRange{{Start: day(5), End: day(6)}}, avail.Blocked)
	})

	t.Run("available outside the booked range", func(t *testing.T) {
		avail, err := svc.CheckCapacity(ctx, 1, day(10), day(12), 2, 0)
		require.NoError(t, err)
		assert.True(t, avail.Available)
		assert.Empty(t, avail.Blocked)
	})

	t.Run("zero requested quantity defaults to one", func(t *testing.T) {
		avail, err := svc.CheckCapacity(ctx, 1, day(5), day(6), 0, 0)
		require.NoError(t, err)
		assert.False(t, avail.Available)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes total without travel and resets status", func(t *testing.T) {
		svc, _ := newTestService(t)

		b, err := svc.Create(ctx, createReq(1))
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, b.ID, UpdateRequest{
			PickupDate: day(10),
			DropDate:   day(13),
			Quantity:   1,
		})
		require.NoError(t, err)

		// 1000 x 3 days, 1% fee, no travel re-applied.
		assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(3030)), "total = %s", updated.TotalAmount)
		assert.Equal(t, StatusPending, updated.Status)
	})

	t.Run("excludes itself from the capacity check", func(t *testing.T) {
		svc, _ := newTestService(t)

		b, err := svc.Create(ctx, createReq(2))
		require.NoError(t, err)

		// Shifting by one day still overlaps itself; without self-exclusion
		// this would always reject.
		_, err = svc.Update(ctx, b.ID, UpdateRequest{
			PickupDate: day(6),
			DropDate:   day(7),
			Quantity:   2,
		})
		assert.NoError(t, err)
	})

	t.Run("conflict leaves the booking unchanged", func(t *testing.T) {
		svc, repo := newTestService(t)

		first, err := svc.Create(ctx, createReq(1))
		require.NoError(t, err)

		second := createReq(2)
		second.PickupDate, second.DropDate = day(10), day(12)
		_, err = svc.Create(ctx, second)
		require.NoError(t, err)

		_, err = svc.Update(ctx, first.ID, UpdateRequest{
			PickupDate: day(10),
			DropDate:   day(11),
			Quantity:   1,
		})
		assert.ErrorIs(t, err, ErrFullyBooked)

		stored, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, day(5), stored.PickupDate)
		assert.Equal(t, day(6), stored.DropDate)
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	b, err := svc.Create(ctx, createReq(1))
	require.NoError(t, err)

	t.Run("valid transition", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, b.ID, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, b.ID, Status("SHIPPED"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestServiceCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	b, err := svc.Create(ctx, createReq(1))
	require.NoError(t, err)

	first, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, first.Status)

	second, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, second.Status)
}

func TestServiceTrack(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	b, err := svc.Create(ctx, createReq(1))
	require.NoError(t, err)

	t.Run("matches phone suffix", func(t *testing.T) {
		got, err := svc.Track(ctx, b.ReferenceID, "3210")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("wrong digits rejected", func(t *testing.T) {
		_, err := svc.Track(ctx, b.ReferenceID, "0000")
		assert.ErrorIs(t, err, ErrTrackVerification)
	})

	t.Run("unknown reference", func(t *testing.T) {
		_, err := svc.Track(ctx, "BOOK-99999", "3210")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceFullyBookedEquipment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Equipment 1 (capacity 2) fully booked; equipment 2 (capacity 3) has
	// one of three units taken.
	_, err := svc.Create(ctx, createReq(2))
	require.NoError(t, err)

	other := createReq(1)
	other.EquipmentID = 2
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	full, err := svc.FullyBookedEquipment(ctx, day(5), day(6))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, full)

	t.Run("empty outside the booked window", func(t *testing.T) {
		full, err := svc.FullyBookedEquipment(ctx, day(20), day(22))
		require.NoError(t, err)
		assert.Empty(t, full)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := svc.FullyBookedEquipment(ctx, day(6), day(5))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestServiceUnavailableDates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, createReq(1))
	require.NoError(t, err)

	ranges, err := svc.UnavailableDates(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []DateRange{{Start: day(5), End: day(6)}}, ranges)

	_, err = svc.UnavailableDates(ctx, 99)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}
