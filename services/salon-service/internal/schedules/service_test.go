package schedules

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/apperr"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
)

var (
	errFakeNotFound = errors.New("fake: no rows")
	errFakeUnique   = errors.New("fake: unique violation")
)

// fakeStore stages writes during InTx and applies them only when the
// callback succeeds, matching transaction semantics.
type fakeStore struct {
	salon     model.Salon
	staff     map[string]bool
	schedules map[string]model.StaffSchedule
	events    []string
}

func newFakeStore() *fakeStore {
	owner := uuid.NewString()
	f := &fakeStore{
		salon:     model.Salon{ID: uuid.NewString(), OwnerID: owner, IsActive: true},
		staff:     map[string]bool{},
		schedules: map[string]model.StaffSchedule{},
	}
	return f
}

func (f *fakeStore) InTx(_ context.Context, fn func(Tx) error) error {
	tx := &fakeTx{store: f, staged: map[string]model.StaffSchedule{}}
	if err := fn(tx); err != nil {
		return err
	}
	for id, s := range tx.staged {
		f.schedules[id] = s
	}
	for _, id := range tx.deactivated {
		s := f.schedules[id]
		s.IsActive = false
		f.schedules[id] = s
	}
	f.events = append(f.events, tx.events...)
	return nil
}

func (f *fakeStore) GetSalon(_ context.Context, salonID string) (model.Salon, error) {
	if f.salon.ID != salonID {
		return model.Salon{}, errFakeNotFound
	}
	return f.salon, nil
}

func (f *fakeStore) SalonNotFound(err error) bool { return errors.Is(err, errFakeNotFound) }

func (f *fakeStore) StaffBelongsToSalon(_ context.Context, staffID, salonID string) (bool, error) {
	return f.staff[staffID] && f.salon.ID == salonID, nil
}

func (f *fakeStore) ListSchedules(_ context.Context, salonID, staffID string) ([]model.StaffSchedule, error) {
	var out []model.StaffSchedule
	for _, s := range f.schedules {
		if s.SalonID == salonID && s.StaffID == staffID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) ScheduleUniqueViolation(err error) bool { return errors.Is(err, errFakeUnique) }
func (f *fakeStore) ScheduleNotFound(err error) bool        { return errors.Is(err, errFakeNotFound) }

type fakeTx struct {
	store       *fakeStore
	staged      map[string]model.StaffSchedule
	deactivated []string
	events      []string
}

func (t *fakeTx) HasActiveScheduleForDay(_ context.Context, staffID, salonID, day, excludeID string) (bool, error) {
	check := func(id string, s model.StaffSchedule) bool {
		return s.StaffID == staffID && s.SalonID == salonID && s.DayOfWeek == day &&
			s.IsActive && id != excludeID
	}
	for id, s := range t.store.schedules {
		if check(id, s) {
			return true, nil
		}
	}
	for id, s := range t.staged {
		if check(id, s) {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) InsertSchedule(_ context.Context, s *model.StaffSchedule) (string, error) {
	id := uuid.NewString()
	cp := *s
	cp.ID = id
	cp.IsActive = true
	t.staged[id] = cp
	return id, nil
}

func (t *fakeTx) InsertSchedulesBatch(ctx context.Context, scheds []model.StaffSchedule) ([]string, error) {
	ids := make([]string, 0, len(scheds))
	for i := range scheds {
		id, err := t.InsertSchedule(ctx, &scheds[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *fakeTx) GetSchedule(_ context.Context, scheduleID string) (model.StaffSchedule, error) {
	if s, ok := t.store.schedules[scheduleID]; ok {
		return s, nil
	}
	return model.StaffSchedule{}, errFakeNotFound
}

func (t *fakeTx) UpdateSchedule(_ context.Context, s *model.StaffSchedule) error {
	if _, ok := t.store.schedules[s.ID]; !ok {
		return errFakeNotFound
	}
	cp := *s
	cp.IsActive = true
	t.staged[s.ID] = cp
	return nil
}

func (t *fakeTx) DeactivateSchedule(_ context.Context, scheduleID string) error {
	t.deactivated = append(t.deactivated, scheduleID)
	return nil
}

func (t *fakeTx) InsertEvent(_ context.Context, eventType, _ string, _ []byte) error {
	t.events = append(t.events, eventType)
	return nil
}

func testService(f *fakeStore) *Service {
	return NewService(f, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func owner(f *fakeStore) Caller {
	return Caller{UserID: f.salon.OwnerID, Role: "owner"}
}

func mondayNine() ScheduleInput {
	return ScheduleInput{Day: "monday", Start: "09:00", End: "17:00"}
}

func wantKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("kind = %v, want %v (err: %v)", got, kind, err)
	}
	if got := apperr.Message(err); got != msg {
		t.Fatalf("message = %q, want %q", got, msg)
	}
}

func TestCreate_FirstScheduleForDay(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	id, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got := f.schedules[id]
	if got.DayOfWeek != "monday" || got.StartMin != 540 || got.EndMin != 1020 {
		t.Fatalf("stored = %+v", got)
	}
	if len(f.events) != 1 || f.events[0] != "salon.schedule.updated.v1" {
		t.Fatalf("events = %v", f.events)
	}
}

func TestCreate_SameDayConflicts(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID,
		ScheduleInput{Day: "monday", Start: "10:00", End: "14:00"})
	wantKind(t, err, apperr.KindConflict, "Staff member already has a schedule for this day")
}

func TestCreate_DifferentDayAllowed(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID,
		ScheduleInput{Day: "tuesday", Start: "09:00", End: "17:00"}); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_NotOwnerForbidden(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	_, err := svc.Create(context.Background(), Caller{UserID: uuid.NewString(), Role: "customer"}, f.salon.ID, staffID, mondayNine())
	wantKind(t, err, apperr.KindPermission, "Not authorized to manage schedules for this salon")
	if len(f.schedules) != 0 {
		t.Fatal("schedule created for denied caller")
	}
}

func TestCreate_AdminAllowed(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	if _, err := svc.Create(context.Background(), Caller{UserID: uuid.NewString(), Role: "admin"}, f.salon.ID, staffID, mondayNine()); err != nil {
		t.Fatalf("admin create: %v", err)
	}
}

func TestCreate_UnknownStaff(t *testing.T) {
	f := newFakeStore()
	svc := testService(f)

	_, err := svc.Create(context.Background(), owner(f), f.salon.ID, uuid.NewString(), mondayNine())
	wantKind(t, err, apperr.KindNotFound, "Staff member not found")
}

func TestSetWeek_AllOrNothing(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	// Existing wednesday schedule makes the third entry conflict.
	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID,
		ScheduleInput{Day: "wednesday", Start: "09:00", End: "17:00"}); err != nil {
		t.Fatal(err)
	}
	before := len(f.schedules)

	_, err := svc.SetWeek(context.Background(), owner(f), f.salon.ID, staffID, []ScheduleInput{
		{Day: "monday", Start: "09:00", End: "17:00"},
		{Day: "tuesday", Start: "09:00", End: "17:00"},
		{Day: "wednesday", Start: "09:00", End: "17:00"},
	})
	wantKind(t, err, apperr.KindConflict, "Staff member already has a schedule for this day")
	if len(f.schedules) != before {
		t.Fatalf("partial write: %d schedules, want %d", len(f.schedules), before)
	}
}

func TestSetWeek_Succeeds(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	ids, err := svc.SetWeek(context.Background(), owner(f), f.salon.ID, staffID, []ScheduleInput{
		{Day: "monday", Start: "09:00", End: "17:00", BreakStart: "12:00", BreakEnd: "13:00"},
		{Day: "tuesday", Start: "10:00", End: "18:00"},
		{Day: "saturday", Start: "09:00", End: "14:00"},
	})
	if err != nil {
		t.Fatalf("SetWeek: %v", err)
	}
	if len(ids) != 3 || len(f.schedules) != 3 {
		t.Fatalf("ids = %d, stored = %d", len(ids), len(f.schedules))
	}
	if len(f.events) != 1 {
		t.Fatalf("events = %v, want one batch event", f.events)
	}
}

func TestSetWeek_DuplicateDayRejected(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	_, err := svc.SetWeek(context.Background(), owner(f), f.salon.ID, staffID, []ScheduleInput{
		{Day: "monday", Start: "09:00", End: "17:00"},
		{Day: "Monday", Start: "10:00", End: "14:00"},
	})
	wantKind(t, err, apperr.KindValidation, "Duplicate day in schedule: monday")
}

func TestUpdate_OwnRowDoesNotConflict(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	id, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine())
	if err != nil {
		t.Fatal(err)
	}

	// Same day, new hours: must not collide with itself.
	if err := svc.Update(context.Background(), owner(f), f.salon.ID, id,
		ScheduleInput{Day: "monday", Start: "10:00", End: "16:00"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := f.schedules[id]; got.StartMin != 600 || got.EndMin != 960 {
		t.Fatalf("stored = %+v", got)
	}
}

func TestUpdate_MoveOntoOccupiedDayConflicts(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	id, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID,
		ScheduleInput{Day: "tuesday", Start: "09:00", End: "17:00"}); err != nil {
		t.Fatal(err)
	}

	err = svc.Update(context.Background(), owner(f), f.salon.ID, id,
		ScheduleInput{Day: "tuesday", Start: "09:00", End: "17:00"})
	wantKind(t, err, apperr.KindConflict, "Staff member already has a schedule for this day")
}

func TestRemove_FreesDaySlot(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	id, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(context.Background(), owner(f), f.salon.ID, id); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// Day slot is free again.
	if _, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID, mondayNine()); err != nil {
		t.Fatalf("re-create after remove: %v", err)
	}
}

func TestCreate_InvalidShiftRejected(t *testing.T) {
	f := newFakeStore()
	staffID := uuid.NewString()
	f.staff[staffID] = true
	svc := testService(f)

	_, err := svc.Create(context.Background(), owner(f), f.salon.ID, staffID,
		ScheduleInput{Day: "monday", Start: "17:00", End: "09:00"})
	wantKind(t, err, apperr.KindValidation, "End time must be after start time")
}
