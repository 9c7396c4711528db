package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eqprent/equipment-rental-backend/internal/auth"
)

type fakeRepo struct {
	byID    map[int64]*User
	byEmail map[string]*User
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[int64]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = r.nextID
	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[u.Email] = &stored
	return nil
}

func newTestService() Service {
	return NewService(newFakeRepo(), auth.NewBcryptPasswordHasherWithCost(4))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to renter role and normalizes email", func(t *testing.T) {
		svc := newTestService()

		u, err := svc.Register(ctx, RegisterRequest{
			Name:     "Asha",
			Email:    "  Asha@Example.COM ",
			Password: "secret",
		})
		require.NoError(t, err)

		assert.Equal(t, RoleUser, u.Role)
		assert.Equal(t, "asha@example.com", u.Email)
		assert.NotEqual(t, "secret", u.PasswordHash)
	})

	t.Run("vendor role accepted case-insensitively", func(t *testing.T) {
		svc := newTestService()

		u, err := svc.Register(ctx, RegisterRequest{
			Name:     "Ravi",
			Email:    "ravi@example.com",
			Password: "secret",
			Role:     "vendor",
		})
		require.NoError(t, err)
		assert.Equal(t, RoleVendor, u.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Register(ctx, RegisterRequest{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "secret",
			Role:     "admin",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Register(ctx, RegisterRequest{Email: "x@example.com", Password: "secret"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc := newTestService()

		req := RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "secret"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "Asha@Example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "asha@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret",
	})
	require.NoError(t, err)

	phone := "+919876543210"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)

	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	// Untouched fields survive.
	assert.Equal(t, "Asha", updated.Name)
}
