package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/restobook/restaurant-reservation/internal/model"
	"github.com/restobook/restaurant-reservation/internal/repository"
)

// ReservationStore is the persistence contract the engine needs for
// reservations. FindForTableStartingBefore is a coarse pre-filter:
// it returns every reservation on the table whose start is strictly
// before the given instant, so it can be answered directly by an
// index on (table_id, starts_at). The precise interval arithmetic
// happens in the engine.
type ReservationStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	FindForTableStartingBefore(ctx context.Context, tableID uint64, before time.Time) ([]model.Reservation, error)
	Create(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, r *model.Reservation) error
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.Reservation, error)
}

// TableStore resolves tables referenced by a reservation.
type TableStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
}

// CustomerStore resolves customers referenced by a reservation.
type CustomerStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
}

// Service is the reservation admission controller. It owns the
// validation order of the create and update flows, which determines
// the error kind a caller observes: required fields, then referenced
// entities, then capacity, then overlap, then slot validity. The
// overlap check deliberately runs before the slot check so that a
// double-booking is reported as a conflict even when the requested
// slot is also structurally invalid.
//
// Admission for a given table is serialized through a per-table
// mutex: the overlap read and the write it gates happen under the
// same lock, so two concurrent creates for overlapping windows on
// one table cannot both pass the check. Tables are independent; no
// cross-table locking exists.
type Service struct {
	reservations ReservationStore
	tables       TableStore
	customers    CustomerStore
	clock        Clock

	mu         sync.Mutex
	tableLocks map[uint64]*sync.Mutex
}

// NewService constructs the admission controller. A nil clock falls
// back to the real one.
func NewService(reservations ReservationStore, tables TableStore, customers CustomerStore, clock Clock) *Service {
	if reservations == nil || tables == nil || customers == nil {
		panic("nil store passed to booking.NewService")
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Service{
		reservations: reservations,
		tables:       tables,
		customers:    customers,
		clock:        clock,
		tableLocks:   make(map[uint64]*sync.Mutex),
	}
}

// lockTable acquires the admission lock for one table and returns
// the release function. Lock values are never removed from the map;
// the set of tables is small and stable.
func (s *Service) lockTable(tableID uint64) func() {
	s.mu.Lock()
	l, ok := s.tableLocks[tableID]
	if !ok {
		l = &sync.Mutex{}
		s.tableLocks[tableID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// CreateParams carries the inbound fields of a create request. A zero
// CustomerID, TableID or StartsAt means the field was absent. Any
// caller-supplied status is ignored on creation; a new reservation is
// always CONFIRMED.
type CreateParams struct {
	CustomerID      uint64
	TableID         uint64
	StartsAt        time.Time
	DurationMinutes int
	NumGuests       int
}

// UpdateParams carries the possibly-partial fields of an update
// request. Nil pointers and the zero values mean "leave unchanged".
// A non-positive DurationMinutes is treated as absent, matching the
// inbound wire shape where the field is a plain integer.
type UpdateParams struct {
	TableID         *uint64
	StartsAt        *time.Time
	DurationMinutes int
	Status          string
}

// Create admits a new reservation or rejects it with one of the three
// business error kinds. On success the persisted reservation is
// returned with its generated ID and CONFIRMED status.
func (s *Service) Create(ctx context.Context, p CreateParams) (*model.Reservation, error) {
	if p.CustomerID == 0 || p.TableID == 0 || p.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: customerId, tableId and reservationTime are required", ErrInvalidInput)
	}
	if _, err := s.loadCustomer(ctx, p.CustomerID); err != nil {
		return nil, err
	}
	table, err := s.loadTable(ctx, p.TableID)
	if err != nil {
		return nil, err
	}
	if p.NumGuests > table.Capacity {
		return nil, fmt.Errorf("%w: number of guests exceeds table capacity", ErrInvalidInput)
	}

	start := p.StartsAt.UTC()

	unlock := s.lockTable(p.TableID)
	defer unlock()

	// Conflict before structural validity: a double-booking is a 409
	// even when the requested slot is also invalid.
	conflicts, err := s.findConflicts(ctx, p.TableID, start, p.DurationMinutes, 0)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: table is already reserved for the requested time slot", ErrConflict)
	}
	if err := s.validateSlot(start, p.DurationMinutes); err != nil {
		return nil, err
	}

	r := &model.Reservation{
		CustomerID:      p.CustomerID,
		TableID:         p.TableID,
		StartsAt:        start,
		DurationMinutes: p.DurationMinutes,
		NumGuests:       p.NumGuests,
		Status:          string(StatusConfirmed),
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies a partial modification to an existing reservation.
// A new table reference takes effect before any time check, so the
// conflict test always runs against the effective (table, window)
// pairing. A new start adopts the supplied duration when positive,
// otherwise the existing one, and both fields change together in the
// same validated step. A positive duration without a new start is
// re-validated against the existing start. A status change must be a
// legal lifecycle transition.
func (s *Service) Update(ctx context.Context, id uint64, p UpdateParams) (*model.Reservation, error) {
	existing, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.TableID != nil {
		if _, err := s.loadTable(ctx, *p.TableID); err != nil {
			return nil, err
		}
		existing.TableID = *p.TableID
	}

	unlock := s.lockTable(existing.TableID)
	defer unlock()

	switch {
	case p.StartsAt != nil:
		duration := existing.DurationMinutes
		if p.DurationMinutes > 0 {
			duration = p.DurationMinutes
		}
		start := p.StartsAt.UTC()
		if err := s.admitWindow(ctx, existing.TableID, start, duration, existing.ID); err != nil {
			return nil, err
		}
		existing.StartsAt = start
		existing.DurationMinutes = duration
	case p.DurationMinutes > 0:
		if err := s.admitWindow(ctx, existing.TableID, existing.StartsAt, p.DurationMinutes, existing.ID); err != nil {
			return nil, err
		}
		existing.DurationMinutes = p.DurationMinutes
	}

	if p.Status != "" {
		next, err := ParseStatus(p.Status)
		if err != nil {
			return nil, err
		}
		current := Status(existing.Status)
		if !current.CanTransition(next) {
			return nil, fmt.Errorf("%w: cannot transition reservation from %s to %s", ErrInvalidInput, current, next)
		}
		existing.Status = string(next)
	}

	if err := s.reservations.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a reservation unconditionally. There is no conflict
// re-check on delete; freeing a window never needs admission.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	ok, err := s.reservations.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: reservation %d does not exist", ErrNotFound, id)
	}
	return s.reservations.Delete(ctx, id)
}

// Get returns one reservation by id.
func (s *Service) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.loadReservation(ctx, id)
}

// List returns every reservation.
func (s *Service) List(ctx context.Context) ([]model.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// admitWindow runs the conflict check followed by the slot check for
// a reschedule, excluding the reservation's own id so it never
// conflicts with itself.
func (s *Service) admitWindow(ctx context.Context, tableID uint64, start time.Time, durationMinutes int, excludeID uint64) error {
	conflicts, err := s.findConflicts(ctx, tableID, start, durationMinutes, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: table is already reserved for the requested time slot", ErrConflict)
	}
	return s.validateSlot(start, durationMinutes)
}

// findConflicts returns the reservations on tableID whose window
// intersects [start, start+durationMinutes). The store delivers a
// superset (everything starting before the candidate end); the true
// half-open interval test is applied here: [a,b) and [c,d) overlap
// iff a < d and c < b. Cancelled and completed reservations no
// longer occupy the table and are skipped.
func (s *Service) findConflicts(ctx context.Context, tableID uint64, start time.Time, durationMinutes int, excludeID uint64) ([]model.Reservation, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	candidates, err := s.reservations.FindForTableStartingBefore(ctx, tableID, end)
	if err != nil {
		return nil, err
	}
	var conflicts []model.Reservation
	for _, c := range candidates {
		if excludeID != 0 && c.ID == excludeID {
			continue
		}
		if c.Status != string(StatusConfirmed) {
			continue
		}
		if c.End().After(start) {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts, nil
}

// validateSlot wraps IsValidSlot into the InvalidInput error kind.
func (s *Service) validateSlot(start time.Time, durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be greater than 0", ErrInvalidInput)
	}
	if !IsValidSlot(start, durationMinutes, s.clock.Now()) {
		return fmt.Errorf("%w: invalid reservation time slot", ErrInvalidInput)
	}
	return nil
}

func (s *Service) loadReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, fmt.Errorf("%w: reservation %d does not exist", ErrNotFound, id)
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) loadCustomer(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, fmt.Errorf("%w: customer %d does not exist", ErrNotFound, id)
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) loadTable(ctx context.Context, id uint64) (*model.Table, error) {
	t, err := s.tables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return nil, fmt.Errorf("%w: table %d does not exist", ErrNotFound, id)
		}
		return nil, err
	}
	return t, nil
}
