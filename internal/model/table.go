package model

import "time"

// Table represents a physical table inside a restaurant.  A table can
// be referenced by zero or more reservations.  The Available flag is
// informational only; the admission engine never consults it when
// deciding whether a reservation may be accepted.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant that owns the table.
//  TableNumber  – human readable table number within the restaurant.
//  Capacity     – maximum number of guests the table seats.
//  Available    – informational availability flag.
//  CreatedAt    – timestamp when the table was created.
//  UpdatedAt    – timestamp of last update.
type Table struct {
	ID           uint64    `json:"id"`            // restaurant_tables.id
	RestaurantID uint64    `json:"restaurant_id"` // restaurant_tables.restaurant_id
	TableNumber  int       `json:"table_number"`  // restaurant_tables.table_number
	Capacity     int       `json:"capacity"`      // restaurant_tables.capacity
	Available    bool      `json:"available"`     // restaurant_tables.available
	CreatedAt    time.Time `json:"created_at"`    // restaurant_tables.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // restaurant_tables.updated_at
}
