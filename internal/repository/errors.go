// Package repository defines sentinel error values reused across the
// repositories. Higher layers use these to distinguish failure
// scenarios: the booking engine translates the not-found sentinels
// into its own NotFound error kind, and the handlers translate
// ErrUsernameExists into an HTTP 409 response.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a restaurant lookup fails.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrTableNotFound is returned when a table lookup fails.
var ErrTableNotFound = errors.New("table not found")

// ErrCustomerNotFound is returned when a customer lookup fails.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUsernameExists is returned when registering a user whose
// username is already taken.
var ErrUsernameExists = errors.New("username already exists")
