// Package booking implements the reservation admission engine: slot
// validation, overlap detection and the lifecycle state of a
// reservation. The engine distinguishes exactly three business error
// kinds so that the HTTP layer can map them without inspecting
// messages. Every error returned by the engine wraps one of the
// sentinels below, or is an unexpected storage failure.
package booking

import "errors"

// ErrNotFound is returned when a referenced customer, table or
// reservation does not exist. Handlers should translate this into an
// HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned for structural problems: missing
// required fields, a non-positive duration, a guest count exceeding
// the table capacity, or a time slot outside the booking policy.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrConflict is returned when the requested window overlaps an
// existing reservation on the same table. Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
