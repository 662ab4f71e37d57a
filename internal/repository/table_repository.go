package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restobook/restaurant-reservation/internal/model"
)

// TableRepo provides persistence for restaurant tables.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, restaurant_id, table_number, capacity, available, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }, t *model.Table) error {
	return row.Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.Capacity, &t.Available, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a new table and reads the row back so that the ID,
// timestamps and defaults are populated.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
	const q = `INSERT INTO restaurant_tables (restaurant_id, table_number, capacity, available)
	           VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, t.RestaurantID, t.TableNumber, t.Capacity, t.Available)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	return scanTable(r.db.QueryRowContext(ctx, sel, t.ID), t)
}

// GetByID retrieves a table by its ID. ErrTableNotFound is returned
// when no row is found.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	var t model.Table
	if err := scanTable(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update persists the mutable fields of a table.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
	const q = `UPDATE restaurant_tables
	           SET restaurant_id = ?, table_number = ?, capacity = ?, available = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, t.RestaurantID, t.TableNumber, t.Capacity, t.Available, t.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		ok, exErr := r.existsByID(ctx, t.ID)
		if exErr != nil {
			return exErr
		}
		if !ok {
			return ErrTableNotFound
		}
	}
	const sel = `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = ?`
	return scanTable(r.db.QueryRowContext(ctx, sel, t.ID), t)
}

// Delete removes a table. ErrTableNotFound is returned when no row
// was deleted.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM restaurant_tables WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrTableNotFound
	}
	return nil
}

// ListAll returns every table ordered by restaurant and table number.
func (r *TableRepo) ListAll(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM restaurant_tables ORDER BY restaurant_id, table_number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Table, 0)
	for rows.Next() {
		var t model.Table
		if err := scanTable(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TableRepo) existsByID(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurant_tables WHERE id = ? LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
