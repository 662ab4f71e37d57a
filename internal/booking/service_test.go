package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/restobook/restaurant-reservation/internal/model"
	"github.com/restobook/restaurant-reservation/internal/repository"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memReservations is an in-memory ReservationStore. All methods are
// mutex-guarded so the concurrency tests exercise the engine's
// serialization, not data races in the fake.
type memReservations struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]model.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{rows: make(map[uint64]model.Reservation)}
}

func (m *memReservations) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	cp := r
	return &cp, nil
}

func (m *memReservations) FindForTableStartingBefore(_ context.Context, tableID uint64, before time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Reservation
	for _, r := range m.rows {
		if r.TableID == tableID && r.StartsAt.Before(before) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) Create(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	m.rows[r.ID] = *r
	return nil
}

func (m *memReservations) Update(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[r.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	m.rows[r.ID] = *r
	return nil
}

func (m *memReservations) ExistsByID(_ context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

func (m *memReservations) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memReservations) ListAll(_ context.Context) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Reservation, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

type memTables struct {
	mu   sync.Mutex
	rows map[uint64]model.Table
}

func (m *memTables) GetByID(_ context.Context, id uint64) (*model.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrTableNotFound
	}
	cp := t
	return &cp, nil
}

type memCustomers struct {
	mu   sync.Mutex
	rows map[uint64]model.Customer
}

func (m *memCustomers) GetByID(_ context.Context, id uint64) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	cp := c
	return &cp, nil
}

// testNow is the fixed clock instant used across the service tests.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// at returns a start time on the day after testNow, inside opening hours.
func at(h, m int) time.Time {
	return time.Date(2026, 3, 11, h, m, 0, 0, time.UTC)
}

func newTestService() (*Service, *memReservations) {
	reservations := newMemReservations()
	tables := &memTables{rows: map[uint64]model.Table{
		1: {ID: 1, RestaurantID: 1, TableNumber: 1, Capacity: 4, Available: true},
		2: {ID: 2, RestaurantID: 1, TableNumber: 2, Capacity: 8, Available: true},
	}}
	customers := &memCustomers{rows: map[uint64]model.Customer{
		1: {ID: 1, Name: "Ada"},
		2: {ID: 2, Name: "Grace"},
	}}
	svc := NewService(reservations, tables, customers, fixedClock{testNow})
	return svc, reservations
}

func mustCreate(t *testing.T, svc *Service, p CreateParams) *model.Reservation {
	t.Helper()
	r, err := svc.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create(%+v) failed: %v", p, err)
	}
	return r
}

func TestCreateReservation(t *testing.T) {
	svc, _ := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})
	if r.ID == 0 {
		t.Error("created reservation has no ID")
	}
	if r.Status != string(StatusConfirmed) {
		t.Errorf("status = %q, want CONFIRMED", r.Status)
	}
	if !r.StartsAt.Equal(at(18, 0)) {
		t.Errorf("starts_at = %s, want %s", r.StartsAt, at(18, 0))
	}
}

func TestCreateMissingFields(t *testing.T) {
	svc, _ := newTestService()
	cases := []CreateParams{
		{TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60},
		{CustomerID: 1, StartsAt: at(18, 0), DurationMinutes: 60},
		{CustomerID: 1, TableID: 1, DurationMinutes: 60},
	}
	for i, p := range cases {
		_, err := svc.Create(context.Background(), p)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: err = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestCreateUnknownReferences(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateParams{
		CustomerID: 99, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown customer: err = %v, want ErrNotFound", err)
	}

	_, err = svc.Create(context.Background(), CreateParams{
		CustomerID: 1, TableID: 99, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown table: err = %v, want ErrNotFound", err)
	}
}

func TestCreateCapacityExceeded(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 10,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateInvalidSlot(t *testing.T) {
	svc, _ := newTestService()
	cases := []struct {
		name  string
		start time.Time
		dur   int
	}{
		{"past", testNow.Add(-time.Hour), 60},
		{"before opening", at(8, 0), 60},
		{"past closing", at(21, 30), 60},
		{"too short", at(18, 0), 15},
		{"too long", at(18, 0), 180},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateParams{
				CustomerID: 1, TableID: 1, StartsAt: tc.start, DurationMinutes: tc.dur, NumGuests: 2,
			})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateOverlapRejected(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})

	_, err := svc.Create(context.Background(), CreateParams{
		CustomerID: 2, TableID: 1, StartsAt: at(18, 30), DurationMinutes: 60, NumGuests: 2,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("overlapping create: err = %v, want ErrConflict", err)
	}

	// Same window on another table is fine.
	mustCreate(t, svc, CreateParams{
		CustomerID: 2, TableID: 2, StartsAt: at(18, 30), DurationMinutes: 60, NumGuests: 2,
	})
}

func TestConflictReportedBeforeInvalidSlot(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})

	// Ten minutes is below the minimum duration, but the window still
	// collides with the existing booking. The caller must see the
	// conflict, not the slot error.
	_, err := svc.Create(context.Background(), CreateParams{
		CustomerID: 2, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 10, NumGuests: 2,
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestBackToBackReservationsAllowed(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})
	// Starts exactly when the previous one ends.
	mustCreate(t, svc, CreateParams{
		CustomerID: 2, TableID: 1, StartsAt: at(19, 0), DurationMinutes: 60, NumGuests: 2,
	})
}

func TestCancelledReservationDoesNotBlock(t *testing.T) {
	svc, _ := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{Status: "CANCELLED"}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	mustCreate(t, svc, CreateParams{
		CustomerID: 2, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})
}

func TestUpdateDurationExcludesSelf(t *testing.T) {
	svc, _ := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})

	// Extending its own window must not collide with itself.
	got, err := svc.Update(context.Background(), r.ID, UpdateParams{DurationMinutes: 120})
	if err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	if got.DurationMinutes != 120 {
		t.Errorf("duration = %d, want 120", got.DurationMinutes)
	}
}

func TestUpdateRescheduleOntoOtherConflicts(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})
	other := mustCreate(t, svc, CreateParams{
		CustomerID: 2, TableID: 1, StartsAt: at(20, 0), DurationMinutes: 60, NumGuests: 2,
	})

	start := at(18, 30)
	_, err := svc.Update(context.Background(), other.ID, UpdateParams{StartsAt: &start})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateRescheduleAdoptsSuppliedDuration(t *testing.T) {
	svc, _ := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})

	start := at(20, 0)
	got, err := svc.Update(context.Background(), r.ID, UpdateParams{StartsAt: &start, DurationMinutes: 90})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !got.StartsAt.Equal(start) || got.DurationMinutes != 90 {
		t.Errorf("got (%s, %d), want (%s, 90)", got.StartsAt, got.DurationMinutes, start)
	}

	// Without a duration the existing one carries over.
	start2 := at(19, 0)
	got, err = svc.Update(context.Background(), r.ID, UpdateParams{StartsAt: &start2})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if got.DurationMinutes != 90 {
		t.Errorf("duration = %d, want 90 carried over", got.DurationMinutes)
	}
}

func TestUpdateMoveToOtherTable(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 2, TableID: 2, StartsAt: at(18, 0), DurationMinutes: 90, NumGuests: 2,
	})

	// Moving onto table 1 while rescheduling to the occupied window
	// must run the conflict check against the new table.
	blocked := uint64(1)
	start := at(18, 0)
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{TableID: &blocked, StartsAt: &start}); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	unknown := uint64(99)
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{TableID: &unknown}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown table: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _ := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})

	got, err := svc.Update(context.Background(), r.ID, UpdateParams{Status: "cancelled"})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got.Status != string(StatusCancelled) {
		t.Errorf("status = %q, want CANCELLED", got.Status)
	}

	// Terminal states cannot be reopened.
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{Status: "CONFIRMED"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("reopen: err = %v, want ErrInvalidInput", err)
	}
	// Setting the same state again is a no-op.
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{Status: "CANCELLED"}); err != nil {
		t.Errorf("idempotent cancel: err = %v", err)
	}
	// Unknown statuses never reach the row.
	if _, err := svc.Update(context.Background(), r.ID, UpdateParams{Status: "NO_SHOW"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown status: err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Update(context.Background(), 42, UpdateParams{Status: "CANCELLED"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc, store := newTestService()
	r := mustCreate(t, svc, CreateParams{
		CustomerID: 1, TableID: 1, StartsAt: at(18, 0), DurationMinutes: 60, NumGuests: 2,
	})

	if err := svc.Delete(context.Background(), r.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if ok, _ := store.ExistsByID(context.Background(), r.ID); ok {
		t.Error("reservation still exists after delete")
	}
	if err := svc.Delete(context.Background(), r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestConcurrentCreatesSameSlot(t *testing.T) {
	svc, store := newTestService()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), CreateParams{
				CustomerID: 1, TableID: 1, StartsAt: at(19, 0), DurationMinutes: 60, NumGuests: 2,
			})
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != n-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, n-1)
	}

	rows, _ := store.ListAll(context.Background())
	if len(rows) != 1 {
		t.Errorf("stored reservations = %d, want 1", len(rows))
	}
}
