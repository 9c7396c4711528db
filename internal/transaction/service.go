package transaction

import (
	"context"
)

type Service interface {
	// Record persists an audit row for a payment attempt. Every attempt is
	// recorded, including rejected ones.
	Record(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*Transaction, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, t *Transaction) error {
	if t.Status == "" {
		t.Status = StatusFailed
	}
	return s.repo.Create(ctx, t)
}

func (s *service) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}
