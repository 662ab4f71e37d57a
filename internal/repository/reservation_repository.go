package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/restobook/restaurant-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. It is
// the storage side of the booking engine's ReservationStore contract.
// All timestamp columns are stored in UTC; the connection is opened
// with parseTime so DATETIME columns scan directly into time.Time.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, customer_id, table_id, starts_at, duration_minutes, num_guests, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, r *model.Reservation) error {
	return row.Scan(
		&r.ID, &r.CustomerID, &r.TableID, &r.StartsAt, &r.DurationMinutes,
		&r.NumGuests, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
}

// GetByID returns a single reservation. ErrReservationNotFound is
// returned when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// FindForTableStartingBefore returns every reservation on the table
// whose start instant is strictly before the given instant, ordered
// by start time. This is the coarse overlap pre-filter; it is
// answered by the index on (table_id, starts_at) and the booking
// engine applies the precise interval test on the result.
func (r *ReservationRepo) FindForTableStartingBefore(ctx context.Context, tableID uint64, before time.Time) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations
	           WHERE table_id = ? AND starts_at < ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, tableID, before.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new reservation and populates the generated ID,
// timestamps and defaults on the provided record by reading the row
// back.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (customer_id, table_id, starts_at, duration_minutes, num_guests, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.CustomerID, res.TableID, res.StartsAt.UTC(), res.DurationMinutes, res.NumGuests, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// Update persists every mutable field of the reservation and reads
// the row back to refresh the updated_at timestamp.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET customer_id = ?, table_id = ?, starts_at = ?, duration_minutes = ?, num_guests = ?, status = ?
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q,
		res.CustomerID, res.TableID, res.StartsAt.UTC(), res.DurationMinutes, res.NumGuests, res.Status, res.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// Zero rows can also mean "no change"; confirm existence
		// before reporting not found.
		ok, exErr := r.ExistsByID(ctx, res.ID)
		if exErr != nil {
			return exErr
		}
		if !ok {
			return ErrReservationNotFound
		}
	}
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// ExistsByID reports whether a reservation with the given id exists.
func (r *ReservationRepo) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT 1 FROM reservations WHERE id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a reservation. ErrReservationNotFound is returned
// when no row was deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// ListAll returns every reservation ordered by start time.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
