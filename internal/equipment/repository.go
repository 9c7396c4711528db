package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id int64) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id int64) error
	AddImages(ctx context.Context, equipmentID int64, urls []string) error

	// Search matches q case-insensitively against name, type and description.
	Search(ctx context.Context, q string, limit int) ([]*Equipment, error)

	// Quantities returns the configured unit count for every equipment item,
	// used by the availability engine's catalog filter.
	Quantities(ctx context.Context) (map[int64]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const equipmentSelect = `
	e.id, e.vendor_id, u.name, u.company_name,
	e.name, e.type, e.description, e.price, e.quantity,
	e.base_address, e.base_lat, e.base_lng, e.per_km_rate,
	COALESCE(
		(SELECT array_agg(i.url ORDER BY i.id)
		 FROM public.equipment_images i
		 WHERE i.equipment_id = e.id),
		'{}'
	) AS images,
	e.created_at`

func scanEquipment(row pgx.Row, extra ...any) (*Equipment, error) {
	var e Equipment
	dest := []any{
		&e.ID, &e.VendorID, &e.VendorName, &e.CompanyName,
		&e.Name, &e.Type, &e.Description, &e.Price, &e.Quantity,
		&e.BaseAddress, &e.BaseLat, &e.BaseLng, &e.PerKmRate,
		&e.Images, &e.CreatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.equipments").
		Columns(
			"vendor_id", "name", "type", "description", "price", "quantity",
			"base_address", "base_lat", "base_lng", "per_km_rate",
		).
		Values(
			e.VendorID, e.Name, e.Type, e.Description, e.Price, e.Quantity,
			e.BaseAddress, e.BaseLat, e.BaseLng, e.PerKmRate,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create equipment query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(equipmentSelect).
		From("public.equipments e").
		Join("public.users u ON e.vendor_id = u.id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get equipment query failed: %w", err)
	}

	return scanEquipment(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(equipmentSelect + ", count(*) OVER() AS total_count").
		From("public.equipments e").
		Join("public.users u ON e.vendor_id = u.id")

	if filter.VendorID != 0 {
		query = query.Where(squirrel.Eq{"e.vendor_id": filter.VendorID})
	}
	if filter.NameContains != "" {
		query = query.Where(squirrel.ILike{"e.name": "%" + filter.NameContains + "%"})
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where(squirrel.NotEq{"e.id": filter.ExcludeIDs})
	}

	query = query.OrderBy("e.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list equipment query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	var items []*Equipment
	var total int

	for rows.Next() {
		e, err := scanEquipment(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}

	return items, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.equipments").
		Set("name", e.Name).
		Set("type", e.Type).
		Set("description", e.Description).
		Set("price", e.Price).
		Set("quantity", e.Quantity).
		Set("base_address", e.BaseAddress).
		Set("base_lat", e.BaseLat).
		Set("base_lng", e.BaseLng).
		Set("per_km_rate", e.PerKmRate).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update equipment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.equipments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete equipment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddImages(ctx context.Context, equipmentID int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.equipment_images").Columns("equipment_id", "url")
	for _, url := range urls {
		insert = insert.Values(equipmentID, url)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build add images query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("add equipment images failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Search(ctx context.Context, q string, limit int) ([]*Equipment, error) {
	pattern := "%" + q + "%"

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(equipmentSelect).
		From("public.equipments e").
		Join("public.users u ON e.vendor_id = u.id").
		Where(squirrel.Or{
			squirrel.ILike{"e.name": pattern},
			squirrel.ILike{"e.type": pattern},
			squirrel.ILike{"e.description": pattern},
		}).
		OrderBy("e.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search equipment query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search equipment failed: %w", err)
	}
	defer rows.Close()

	var items []*Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *pgxRepository) Quantities(ctx context.Context) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, quantity FROM public.equipments")
	if err != nil {
		return nil, fmt.Errorf("list equipment quantities failed: %w", err)
	}
	defer rows.Close()

	quantities := make(map[int64]int)
	for rows.Next() {
		var id int64
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scan equipment quantity failed: %w", err)
		}
		quantities[id] = qty
	}
	return quantities, nil
}
