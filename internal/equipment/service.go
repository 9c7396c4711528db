package equipment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	VendorID    int64
	Name        string
	Type        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	BaseAddress *string
	BaseLat     *float64
	BaseLng     *float64
	PerKmRate   *decimal.Decimal
	ImageURLs   []string
}

type UpdateRequest struct {
	Name        *string
	Type        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	BaseAddress *string
	BaseLat     *float64
	BaseLng     *float64
	PerKmRate   *decimal.Decimal
	ImageURLs   []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Equipment, error)
	GetByID(ctx context.Context, id int64) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Equipment, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, limit int) ([]*Equipment, error)
	Quantities(ctx context.Context) (map[int64]int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Equipment, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" || req.VendorID == 0 {
		return nil, ErrMissingFields
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	// Quantity defaults to a single unit; the per-km transport rate
	// defaults to the platform-wide rate.
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	perKmRate := DefaultPerKmRate
	if req.PerKmRate != nil && req.PerKmRate.GreaterThan(decimal.Zero) {
		perKmRate = *req.PerKmRate
	}

	e := &Equipment{
		VendorID:    req.VendorID,
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		Price:       req.Price,
		Quantity:    quantity,
		BaseAddress: req.BaseAddress,
		BaseLat:     req.BaseLat,
		BaseLng:     req.BaseLng,
		PerKmRate:   perKmRate,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.AddImages(ctx, e.ID, req.ImageURLs); err != nil {
		return nil, err
	}
	e.Images = req.ImageURLs

	return e, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int64, req UpdateRequest) (*Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) != "" {
		e.Type = strings.TrimSpace(*req.Type)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidPrice
		}
		e.Price = *req.Price
	}
	if req.Quantity != nil {
		qty := *req.Quantity
		if qty < 1 {
			qty = 1
		}
		e.Quantity = qty
	}
	if req.BaseAddress != nil {
		e.BaseAddress = req.BaseAddress
	}
	if req.BaseLat != nil {
		e.BaseLat = req.BaseLat
	}
	if req.BaseLng != nil {
		e.BaseLng = req.BaseLng
	}
	if req.PerKmRate != nil && req.PerKmRate.GreaterThan(decimal.Zero) {
		e.PerKmRate = *req.PerKmRate
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.AddImages(ctx, e.ID, req.ImageURLs); err != nil {
		return nil, err
	}
	e.Images = append(e.Images, req.ImageURLs...)

	return e, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Search(ctx context.Context, q string, limit int) ([]*Equipment, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.Search(ctx, q, limit)
}

func (s *service) Quantities(ctx context.Context) (map[int64]int, error) {
	return s.repo.Quantities(ctx)
}
