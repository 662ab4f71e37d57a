package model

import "time"

// Reservation records a customer's booking of a table for a time
// window.  The window is the half-open interval
// [StartsAt, StartsAt+DurationMinutes): a reservation ending exactly
// when another begins does not overlap it.  Reservations are created
// and mutated only through the booking service, never directly.
//
// Fields:
//  ID              – primary key identifier.
//  CustomerID      – customer who holds the reservation.
//  TableID         – table being reserved.
//  StartsAt        – start instant of the window, stored in UTC.
//  DurationMinutes – length of the window in minutes (> 0).
//  NumGuests       – party size; checked against table capacity.
//  Status          – lifecycle state (CONFIRMED, CANCELLED, COMPLETED).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64    `json:"id"`               // reservations.id
	CustomerID      uint64    `json:"customer_id"`      // reservations.customer_id
	TableID         uint64    `json:"table_id"`         // reservations.table_id
	StartsAt        time.Time `json:"reservation_time"` // reservations.starts_at
	DurationMinutes int       `json:"duration_minutes"` // reservations.duration_minutes
	NumGuests       int       `json:"num_guests"`       // reservations.num_guests
	Status          string    `json:"status"`           // reservations.status
	CreatedAt       time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // reservations.updated_at
}

// End returns the exclusive end instant of the reservation window.
func (r *Reservation) End() time.Time {
	return r.StartsAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}
