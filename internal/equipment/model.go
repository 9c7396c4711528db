package equipment

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "equipment not found")
	ErrMissingFields = apperror.New(http.StatusBadRequest, "name, type, price and vendor are required")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "price must be greater than zero")
)

// DefaultPerKmRate is the transport rate applied when a vendor does not set one.
var DefaultPerKmRate = decimal.NewFromInt(150)

// Equipment is a rentable catalog item. Quantity is the number of units
// that can be rented concurrently; it is always at least 1.
type Equipment struct {
	ID          int64
	VendorID    int64
	VendorName  string
	CompanyName *string
	Name        string
	Type        string
	Description string
	Price       decimal.Decimal // per-day unit price
	Quantity    int
	BaseAddress *string
	BaseLat     *float64
	BaseLng     *float64
	PerKmRate   decimal.Decimal
	Images      []string
	CreatedAt   time.Time
}

// Filter defines parameters for listing equipment.
type Filter struct {
	VendorID     int64
	NameContains string
	ExcludeIDs   []int64 // fully booked items suppressed from listings
	Page         int
	PageSize     int
}
