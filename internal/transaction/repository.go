package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	ListByUser(ctx context.Context, userID int64) ([]*Transaction, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const transactionSelect = `
	t.id, t.user_id, t.booking_id, t.amount, t.status, t.method,
	COALESCE(t.order_id, ''), COALESCE(t.payment_id, ''), t.reason,
	t.created_at, b.reference_id, e.name`

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	if err := row.Scan(
		&t.ID, &t.UserID, &t.BookingID, &t.Amount, &t.Status, &t.Method,
		&t.OrderID, &t.PaymentID, &t.Reason,
		&t.CreatedAt, &t.BookingReference, &t.EquipmentName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan transaction failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) Create(ctx context.Context, t *Transaction) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.transactions").
		Columns("user_id", "booking_id", "amount", "status", "method", "order_id", "payment_id", "reason").
		Values(t.UserID, t.BookingID, t.Amount, t.Status, t.Method, t.OrderID, t.PaymentID, t.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create transaction query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(transactionSelect).
		From("public.transactions t").
		LeftJoin("public.bookings b ON t.booking_id = b.id").
		LeftJoin("public.equipments e ON b.equipment_id = e.id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get transaction query failed: %w", err)
	}

	return scanTransaction(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID int64) ([]*Transaction, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(transactionSelect).
		From("public.transactions t").
		LeftJoin("public.bookings b ON t.booking_id = b.id").
		LeftJoin("public.equipments e ON b.equipment_id = e.id").
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy("t.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list transactions query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions failed: %w", err)
	}
	defer rows.Close()

	var items []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}
