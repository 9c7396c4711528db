package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eqprent/equipment-rental-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByReference(ctx context.Context, ref string) (*Booking, error)
	Update(ctx context.Context, b *Booking) error
	SetStatus(ctx context.Context, id int64, status Status) error
	SetReference(ctx context.Context, id int64, ref string) error

	// ListOverlapping returns all non-cancelled bookings for the equipment
	// whose inclusive date range intersects [from, to], excluding excludeID
	// when non-zero.
	ListOverlapping(ctx context.Context, equipmentID int64, from, to time.Time, excludeID int64) ([]*Booking, error)

	// ListOverlappingAll is ListOverlapping across every equipment item,
	// used by the catalog's fully-booked filter.
	ListOverlappingAll(ctx context.Context, from, to time.Time) ([]*Booking, error)

	// ActiveRanges returns the date ranges of all non-cancelled bookings for
	// the equipment, for calendar blocking.
	ActiveRanges(ctx context.Context, equipmentID int64) ([]DateRange, error)

	ListByUser(ctx context.Context, userID int64) ([]*Booking, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*Booking, error)

	// InTx runs fn against a repository bound to a SERIALIZABLE transaction.
	// Capacity admission (overlap read) and the booking write must share one
	// call so concurrent requests cannot jointly overbook.
	InTx(ctx context.Context, fn func(Repository) error) error
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxRepository struct {
	q    querier
	pool *pgxpool.Pool // nil when bound to a transaction
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{q: pool, pool: pool}
}

func (r *pgxRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.pool == nil {
		// Already inside a transaction; run directly.
		return fn(r)
	}

	err := db.RunSerializable(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(&pgxRepository{q: tx})
	})
	return mapSerializationFailure(err)
}

// mapSerializationFailure turns a postgres serialization error into the
// retryable conflict surfaced to callers.
func mapSerializationFailure(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure {
		return ErrConcurrentBooking
	}
	return err
}

const bookingSelect = `
	b.id, b.equipment_id, e.name, b.user_id, b.vendor_id,
	b.name, b.address, b.pickup_date, b.drop_date, b.quantity,
	b.status, b.total_amount, b.payment_type, COALESCE(b.reference_id, ''),
	b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.EquipmentID, &b.EquipmentName, &b.UserID, &b.VendorID,
		&b.Name, &b.Address, &b.PickupDate, &b.DropDate, &b.Quantity,
		&b.Status, &b.TotalAmount, &b.PaymentType, &b.ReferenceID,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"equipment_id", "user_id", "vendor_id", "name", "address",
			"pickup_date", "drop_date", "quantity", "status", "total_amount", "payment_type",
		).
		Values(
			b.EquipmentID, b.UserID, b.VendorID, b.Name, b.Address,
			b.PickupDate, b.DropDate, b.Quantity, b.Status, b.TotalAmount, b.PaymentType,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelect).
		From("public.bookings b").
		Join("public.equipments e ON b.equipment_id = e.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	return scanBooking(r.q.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelect).
		From("public.bookings b").
		Join("public.equipments e ON b.equipment_id = e.id").
		Where(squirrel.Eq{"b.reference_id": ref}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking by reference query failed: %w", err)
	}

	return scanBooking(r.q.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("pickup_date", b.PickupDate).
		Set("drop_date", b.DropDate).
		Set("quantity", b.Quantity).
		Set("status", b.Status).
		Set("total_amount", b.TotalAmount).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetStatus(ctx context.Context, id int64, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set booking status query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetReference(ctx context.Context, id int64, ref string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("reference_id", ref).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set booking reference query failed: %w", err)
	}

	ct, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set booking reference failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// overlapConditions builds the shared inclusive-overlap predicate:
// pickup_date <= to AND drop_date >= from, status != CANCELLED.
func overlapConditions(query squirrel.SelectBuilder, from, to time.Time) squirrel.SelectBuilder {
	return query.
		Where(squirrel.NotEq{"b.status": StatusCancelled}).
		Where(squirrel.LtOrEq{"b.pickup_date": to}).
		Where(squirrel.GtOrEq{"b.drop_date": from})
}

func (r *pgxRepository) listOverlapping(ctx context.Context, equipmentID int64, from, to time.Time, excludeID int64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingSelect).
		From("public.bookings b").
		Join("public.equipments e ON b.equipment_id = e.id")

	if equipmentID != 0 {
		query = query.Where(squirrel.Eq{"b.equipment_id": equipmentID})
	}
	if excludeID != 0 {
		query = query.Where(squirrel.NotEq{"b.id": excludeID})
	}
	query = overlapConditions(query, from, to)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, equipmentID int64, from, to time.Time, excludeID int64) ([]*Booking, error) {
	return r.listOverlapping(ctx, equipmentID, from, to, excludeID)
}

func (r *pgxRepository) ListOverlappingAll(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	return r.listOverlapping(ctx, 0, from, to, 0)
}

func (r *pgxRepository) ActiveRanges(ctx context.Context, equipmentID int64) ([]DateRange, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("pickup_date", "drop_date").
		From("public.bookings").
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		OrderBy("pickup_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active ranges query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active ranges failed: %w", err)
	}
	defer rows.Close()

	var ranges []DateRange
	for rows.Next() {
		var dr DateRange
		if err := rows.Scan(&dr.Start, &dr.End); err != nil {
			return nil, fmt.Errorf("scan date range failed: %w", err)
		}
		ranges = append(ranges, dr)
	}
	return ranges, nil
}

func (r *pgxRepository) listBy(ctx context.Context, column string, id int64) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingSelect).
		From("public.bookings b").
		Join("public.equipments e ON b.equipment_id = e.id").
		Where(squirrel.Eq{column: id}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID int64) ([]*Booking, error) {
	return r.listBy(ctx, "b.user_id", userID)
}

func (r *pgxRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*Booking, error) {
	return r.listBy(ctx, "b.vendor_id", vendorID)
}
