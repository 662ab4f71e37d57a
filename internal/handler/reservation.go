package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/restobook/restaurant-reservation/internal/booking"
	"github.com/restobook/restaurant-reservation/internal/model"
	"github.com/restobook/restaurant-reservation/internal/queue"
	queue_publisher "github.com/restobook/restaurant-reservation/internal/service"
)

// ReservationHandler exposes the admission engine over HTTP. All
// admission decisions live in booking.Service; the handler only
// parses, delegates and maps errors to status codes.
type ReservationHandler struct {
	Svc *booking.Service
}

func NewReservationHandler(svc *booking.Service) *ReservationHandler {
	return &ReservationHandler{Svc: svc}
}

type createReservationReq struct {
	CustomerID      uint64 `json:"customer_id"`
	TableID         uint64 `json:"table_id"`
	ReservationTime string `json:"reservation_time"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes"`
	NumGuests       int    `json:"num_guests"`
}

type updateReservationReq struct {
	TableID         *uint64 `json:"table_id"`
	ReservationTime *string `json:"reservation_time"` // RFC 3339
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status"`
}

// List returns every reservation.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Svc.List(ctx)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one reservation by id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Svc.Get(ctx, id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Create admits a new reservation. On success a confirmation event is
// published in the background; a broker outage never fails the request.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var startsAt time.Time
	if req.ReservationTime != "" {
		t, err := time.Parse(time.RFC3339, req.ReservationTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_time must be RFC 3339"})
		}
		startsAt = t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Svc.Create(ctx, booking.CreateParams{
		CustomerID:      req.CustomerID,
		TableID:         req.TableID,
		StartsAt:        startsAt,
		DurationMinutes: req.DurationMinutes,
		NumGuests:       req.NumGuests,
	})
	if err != nil {
		return bookingError(c, err)
	}

	go publishConfirmed(r)

	return c.JSON(http.StatusCreated, r)
}

// Update applies a partial modification to a reservation.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	params := booking.UpdateParams{
		TableID:         req.TableID,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
	}
	if req.ReservationTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ReservationTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_time must be RFC 3339"})
		}
		params.StartsAt = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	r, err := h.Svc.Update(ctx, id, params)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Delete removes a reservation.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.Delete(ctx, id); err != nil {
		return bookingError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func publishConfirmed(r *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID:   r.ID,
		CustomerID:      r.CustomerID,
		TableID:         r.TableID,
		ReservationTime: r.StartsAt.UTC().Format(time.RFC3339),
		DurationMinutes: r.DurationMinutes,
		NumGuests:       r.NumGuests,
		Status:          r.Status,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}
