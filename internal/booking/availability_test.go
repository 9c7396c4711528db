package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"disjoint before", day(1), day(3), day(5), day(8), false},
		{"disjoint after", day(10), day(12), day(5), day(8), false},
		{"touching at boundary counts", day(5), day(10), day(10), day(15), true},
		{"touching at other boundary counts", day(10), day(15), day(5), day(10), true},
		{"contained", day(6), day(7), day(5), day(8), true},
		{"containing", day(5), day(8), day(6), day(7), true},
		{"identical", day(5), day(8), day(5), day(8), true},
		{"partial overlap", day(3), day(6), day(5), day(8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestBookedUnits(t *testing.T) {
	bookings := []*Booking{
		{ID: 1, PickupDate: day(5), DropDate: day(10), Quantity: 2, Status: StatusConfirmed},
		{ID: 2, PickupDate: day(8), DropDate: day(12), Quantity: 1, Status: StatusPending},
		{ID: 3, PickupDate: day(5), DropDate: day(10), Quantity: 5, Status: StatusCancelled},
		{ID: 4, PickupDate: day(20), DropDate: day(25), Quantity: 3, Status: StatusConfirmed},
		// Legacy row without a quantity counts as one unit.
		{ID: 5, PickupDate: day(9), DropDate: day(9), Quantity: 0, Status: StatusConfirmed},
	}

	t.Run("sums overlapping non-cancelled bookings", func(t *testing.T) {
		assert.Equal(t, 4, BookedUnits(bookings, day(9), day(9), 0))
	})

	t.Run("cancelled bookings never count", func(t *testing.T) {
		assert.Equal(t, 2, BookedUnits(bookings, day(5), day(6), 0))
	})

	t.Run("non-overlapping bookings are skipped", func(t *testing.T) {
		assert.Equal(t, 0, BookedUnits(bookings, day(14), day(16), 0))
	})

	t.Run("excluded booking is skipped", func(t *testing.T) {
		assert.Equal(t, 2, BookedUnits(bookings, day(9), day(9), 1))
	})

	t.Run("boundary day still counts", func(t *testing.T) {
		// Existing booking drops on day 10; a pickup on day 10 conflicts.
		assert.Equal(t, 2, BookedUnits(bookings, day(10), day(15), 2))
	})
}

func TestBlockedRanges(t *testing.T) {
	bookings := []*Booking{
		{ID: 1, PickupDate: day(5), DropDate: day(10), Quantity: 1, Status: StatusConfirmed},
		{ID: 2, PickupDate: day(8), DropDate: day(12), Quantity: 1, Status: StatusCancelled},
		{ID: 3, PickupDate: day(20), DropDate: day(25), Quantity: 1, Status: StatusPending},
	}

	got := BlockedRanges(bookings, day(6), day(21), 0)

	assert.Equal(t, []DateRange{
		{Start: day(5), End: day(10)},
		{Start: day(20), End: day(25)},
	}, got)
}
