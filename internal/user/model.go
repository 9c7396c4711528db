package user

import (
	"net/http"
	"time"

	"github.com/eqprent/equipment-rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrMissingFields      = apperror.New(http.StatusBadRequest, "name, email and password are required")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
)

// Role separates renters from equipment vendors.
type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
)

// ValidRole reports whether r is a known role value.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleVendor
}

// User represents an account. Vendors carry the extra profile fields used
// on their public vendor page.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        *string
	Address      *string
	CompanyName  *string
	ProfileImg   *string
	CreatedAt    time.Time
}
