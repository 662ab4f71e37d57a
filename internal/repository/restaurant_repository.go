package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restobook/restaurant-reservation/internal/model"
)

// RestaurantRepo provides persistence for restaurants.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the given DB handle.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

const restaurantColumns = `id, name, address, phone, created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }, rs *model.Restaurant) error {
	return row.Scan(&rs.ID, &rs.Name, &rs.Address, &rs.Phone, &rs.CreatedAt, &rs.UpdatedAt)
}

// Create inserts a new restaurant and populates the generated ID and
// timestamps on the provided record.
func (r *RestaurantRepo) Create(ctx context.Context, rs *model.Restaurant) error {
	const q = `INSERT INTO restaurants (name, address, phone) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, rs.Name, rs.Address, rs.Phone)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rs.ID = uint64(id)
	const sel = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	return scanRestaurant(r.db.QueryRowContext(ctx, sel, rs.ID), rs)
}

// GetByID retrieves a restaurant by ID. ErrRestaurantNotFound is
// returned when no row is found.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	var rs model.Restaurant
	if err := scanRestaurant(r.db.QueryRowContext(ctx, q, id), &rs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &rs, nil
}

// Update persists the mutable fields of a restaurant.
func (r *RestaurantRepo) Update(ctx context.Context, rs *model.Restaurant) error {
	const q = `UPDATE restaurants SET name = ?, address = ?, phone = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, rs.Name, rs.Address, rs.Phone, rs.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM restaurants WHERE id = ? LIMIT 1`, rs.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRestaurantNotFound
		}
		if err != nil {
			return err
		}
	}
	const sel = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`
	return scanRestaurant(r.db.QueryRowContext(ctx, sel, rs.ID), rs)
}

// Delete removes a restaurant. ErrRestaurantNotFound is returned
// when no row was deleted.
func (r *RestaurantRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM restaurants WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrRestaurantNotFound
	}
	return nil
}

// ListAll returns every restaurant ordered by name.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var rs model.Restaurant
		if err := scanRestaurant(rows, &rs); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
