package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restobook/restaurant-reservation/internal/model"
)

// CustomerRepo provides persistence for customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `id, name, phone, email, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
	return row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new customer and populates the generated ID and
// timestamps on the provided record.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (name, phone, email) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, c.Name, c.Phone, c.Email)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return scanCustomer(r.db.QueryRowContext(ctx, sel, c.ID), c)
}

// GetByID retrieves a customer by ID. ErrCustomerNotFound is
// returned when no row is found.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	var c model.Customer
	if err := scanCustomer(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update persists the mutable fields of a customer.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = `UPDATE customers SET name = ?, phone = ?, email = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, c.Name, c.Phone, c.Email, c.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ? LIMIT 1`, c.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		if err != nil {
			return err
		}
	}
	const sel = `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return scanCustomer(r.db.QueryRowContext(ctx, sel, c.ID), c)
}

// Delete removes a customer. ErrCustomerNotFound is returned when no
// row was deleted. Reservations referencing the customer are left
// untouched.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM customers WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// ListAll returns every customer ordered by name.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
