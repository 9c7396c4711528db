package request

import (
	"time"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

// ByIDRequest is a common struct for endpoints that take a numeric ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// ListParams holds common pagination query parameters.
type ListParams struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDate parses a pickup/drop date sent by clients. Date-only values and
// full RFC3339 timestamps are both accepted; the result is truncated to the
// day in UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, apperror.BadRequest("invalid date format: " + s)
}
