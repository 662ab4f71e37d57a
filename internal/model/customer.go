package model

import "time"

// Customer represents a guest who can hold reservations.  Customers
// are referenced by zero or more reservations; deleting a customer
// has no cascading effect on the admission engine.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – full name of the customer.
//  Phone     – contact phone number.
//  Email     – contact email address.
//  CreatedAt – timestamp when the customer was created.
//  UpdatedAt – timestamp of last update.
type Customer struct {
	ID        uint64    `json:"id"`         // customers.id
	Name      string    `json:"name"`       // customers.name
	Phone     string    `json:"phone"`      // customers.phone
	Email     string    `json:"email"`      // customers.email
	CreatedAt time.Time `json:"created_at"` // customers.created_at
	UpdatedAt time.Time `json:"updated_at"` // customers.updated_at
}
