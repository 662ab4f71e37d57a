// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is admitted.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	CustomerID      uint64 `json:"customer_id"`
	TableID         uint64 `json:"table_id"`
	ReservationTime string `json:"reservation_time"`
	DurationMinutes int    `json:"duration_minutes"`
	NumGuests       int    `json:"num_guests"`
	Status          string `json:"status"`
	ConfirmedAt     string `json:"confirmed_at"`
}
