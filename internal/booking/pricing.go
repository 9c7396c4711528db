package booking

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// platformFeeRate is the flat surcharge applied to every booking total.
var platformFeeRate = decimal.NewFromFloat(0.01)

// Quote is the deterministic price breakdown for a booking.
type Quote struct {
	RentalDays  int
	BaseTotal   decimal.Decimal
	PlatformFee decimal.Decimal
	Total       decimal.Decimal
}

// RentalDays returns the number of whole billable days between pickup and
// drop, rounding partial days up. A same-day booking counts as one day.
func RentalDays(pickup, drop time.Time) int {
	days := int(math.Ceil(drop.Sub(pickup).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputeTotal prices a booking:
//
//	base  = unitPrice × rentalDays × quantity + travelCost
//	fee   = base × 1%
//	total = base + fee
//
// Quantity below 1 is treated as a single unit, the same default the
// capacity check applies. All arithmetic is decimal to avoid float drift.
func ComputeTotal(unitPrice decimal.Decimal, pickup, drop time.Time, quantity int, travelCost decimal.Decimal) Quote {
	if quantity < 1 {
		quantity = 1
	}

	days := RentalDays(pickup, drop)

	base := unitPrice.
		Mul(decimal.NewFromInt(int64(days))).
		Mul(decimal.NewFromInt(int64(quantity))).
		Add(travelCost)
	fee := base.Mul(platformFeeRate)

	return Quote{
		RentalDays:  days,
		BaseTotal:   base,
		PlatformFee: fee,
		Total:       base.Add(fee),
	}
}
