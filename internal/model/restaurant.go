package model

import "time"

// Restaurant represents a venue that owns a set of tables.  Each
// restaurant can contain multiple tables.  This struct corresponds
// to a row in the `restaurants` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the restaurant.
//  Address   – street address.
//  Phone     – contact phone number.
//  CreatedAt – timestamp when the restaurant was created.
//  UpdatedAt – timestamp of last update.
type Restaurant struct {
	ID        uint64    `json:"id"`         // restaurants.id
	Name      string    `json:"name"`       // restaurants.name
	Address   string    `json:"address"`    // restaurants.address
	Phone     string    `json:"phone"`      // restaurants.phone
	CreatedAt time.Time `json:"created_at"` // restaurants.created_at
	UpdatedAt time.Time `json:"updated_at"` // restaurants.updated_at
}
