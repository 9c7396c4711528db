package booking

import "time"

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] intersect. A booking that starts exactly when another
// ends counts as overlapping; callers wanting half-open semantics must
// pre-adjust by one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// unitCount treats a missing or zero quantity as a single unit.
func unitCount(b *Booking) int {
	if b.Quantity < 1 {
		return 1
	}
	return b.Quantity
}

// BookedUnits sums the reserved quantity of all non-cancelled bookings
// overlapping [from, to], skipping excludeID (used when re-validating a
// booking being edited; pass 0 to exclude nothing).
func BookedUnits(bookings []*Booking, from, to time.Time, excludeID int64) int {
	booked := 0
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !Overlaps(from, to, b.PickupDate, b.DropDate) {
			continue
		}
		booked += unitCount(b)
	}
	return booked
}

// BlockedRanges collects the date ranges of the bookings counted by
// BookedUnits, for reporting back to callers on rejection.
func BlockedRanges(bookings []*Booking, from, to time.Time, excludeID int64) []DateRange {
	var blocked []DateRange
	for _, b := range bookings {
		if b.Status == StatusCancelled {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if !Overlaps(from, to, b.PickupDate, b.DropDate) {
			continue
		}
		blocked = append(blocked, DateRange{Start: b.PickupDate, End: b.DropDate})
	}
	return blocked
}
