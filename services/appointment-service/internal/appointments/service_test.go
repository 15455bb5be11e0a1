package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/apperr"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

var errFakeNotFound = errors.New("fake: no rows")

type fakeStore struct {
	appointments map[string]model.Appointment
	salons       map[string]model.Salon
	threads      []model.MessageThread
	statusWrites int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appointments: map[string]model.Appointment{},
		salons:       map[string]model.Salon{},
	}
}

func (f *fakeStore) CancelAppointment(_ context.Context, appointmentID, updatedByID string, decide func(model.Appointment) error) (model.Appointment, error) {
	a, ok := f.appointments[appointmentID]
	if !ok {
		return model.Appointment{}, errFakeNotFound
	}
	if err := decide(a); err != nil {
		return model.Appointment{}, err
	}
	a.Status = lifecycle.StatusCancelled
	a.UpdatedByID = updatedByID
	f.appointments[appointmentID] = a
	f.statusWrites++
	return a, nil
}

func (f *fakeStore) OpenRescheduleRequest(_ context.Context, appointmentID, updatedByID string, decide func(model.Appointment) (*model.MessageThread, error)) (model.Appointment, error) {
	a, ok := f.appointments[appointmentID]
	if !ok {
		return model.Appointment{}, errFakeNotFound
	}
	thread, err := decide(a)
	if err != nil {
		return model.Appointment{}, err
	}
	f.threads = append(f.threads, *thread)
	a.Status = lifecycle.StatusPending
	a.UpdatedByID = updatedByID
	f.appointments[appointmentID] = a
	f.statusWrites++
	return a, nil
}

func (f *fakeStore) GetSalon(_ context.Context, salonID string) (model.Salon, error) {
	s, ok := f.salons[salonID]
	if !ok {
		return model.Salon{}, errFakeNotFound
	}
	return s, nil
}

func (f *fakeStore) SalonNotFound(err error) bool       { return errors.Is(err, errFakeNotFound) }
func (f *fakeStore) AppointmentNotFound(err error) bool { return errors.Is(err, errFakeNotFound) }

func (f *fakeStore) ListByCustomer(_ context.Context, customerID string, _ int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.appointments {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBySalon(_ context.Context, salonID string, _ int) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range f.appointments {
		if a.SalonID == salonID {
			out = append(out, a)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedAppointment(f *fakeStore, status lifecycle.Status, start time.Time) model.Appointment {
	a := model.Appointment{
		ID:         uuid.NewString(),
		SalonID:    uuid.NewString(),
		CustomerID: uuid.NewString(),
		StaffID:    uuid.NewString(),
		ServiceID:  uuid.NewString(),
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     status,
	}
	f.appointments[a.ID] = a
	f.salons[a.SalonID] = model.Salon{ID: a.SalonID, Name: "Shear Genius", IsActive: true}
	return a
}

func wantKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("kind = %v, want %v (err: %v)", got, kind, err)
	}
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("error is not *apperr.Error: %v", err)
	}
	if e.Message != msg {
		t.Fatalf("message = %q, want %q", e.Message, msg)
	}
}

func TestCancel_OutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	if err := svc.Cancel(context.Background(), a.ID, a.CustomerID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got := store.appointments[a.ID].Status; got != lifecycle.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", got)
	}
	if store.appointments[a.ID].UpdatedByID != a.CustomerID {
		t.Fatal("updated_by not stamped with caller")
	}
}

func TestCancel_ExactlyAtBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(24*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	if err := svc.Cancel(context.Background(), a.ID, a.CustomerID); err != nil {
		t.Fatalf("Cancel at exactly 24h should be allowed: %v", err)
	}
}

func TestCancel_InsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(4*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	err := svc.Cancel(context.Background(), a.ID, a.CustomerID)
	wantKind(t, err, apperr.KindPolicyViolation,
		"Cannot cancel within 24 hours of appointment. Please contact the salon directly.")
	if got := store.appointments[a.ID].Status; got != lifecycle.StatusConfirmed {
		t.Fatalf("status changed to %s on refused cancel", got)
	}
}

func TestCancel_NotOwner(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(72*time.Hour))
	svc := NewService(store, testLogger())

	err := svc.Cancel(context.Background(), a.ID, uuid.NewString())
	wantKind(t, err, apperr.KindPermission, "Not authorized to cancel this appointment")
	if got := store.appointments[a.ID].Status; got != lifecycle.StatusConfirmed {
		t.Fatalf("status changed to %s on denied cancel", got)
	}
}

func TestCancel_AlreadyCancelledIsRejected(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(72*time.Hour))
	svc := NewService(store, testLogger())

	if err := svc.Cancel(context.Background(), a.ID, a.CustomerID); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	writes := store.statusWrites

	err := svc.Cancel(context.Background(), a.ID, a.CustomerID)
	wantKind(t, err, apperr.KindConflict, "Appointment is already cancelled")
	if store.statusWrites != writes {
		t.Fatal("repeated cancel wrote state again")
	}
}

func TestCancel_CompletedIsRejected(t *testing.T) {
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusCompleted, time.Now().Add(-time.Hour))
	svc := NewService(store, testLogger())

	err := svc.Cancel(context.Background(), a.ID, a.CustomerID)
	wantKind(t, err, apperr.KindConflict, "Cannot cancel completed appointment")
}

func TestCancel_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testLogger())

	err := svc.Cancel(context.Background(), uuid.NewString(), uuid.NewString())
	wantKind(t, err, apperr.KindNotFound, "Appointment not found")
}

func TestCancel_InvalidID(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testLogger())

	err := svc.Cancel(context.Background(), "not-a-uuid", uuid.NewString())
	wantKind(t, err, apperr.KindValidation, "Invalid appointment id")
}

func TestRequestReschedule_OpensThreadAndFlipsToPending(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	newTime := now.Add(96 * time.Hour)
	if err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, newTime, "Work trip came up"); err != nil {
		t.Fatalf("RequestReschedule: %v", err)
	}

	got := store.appointments[a.ID]
	if got.Status != lifecycle.StatusPending {
		t.Fatalf("status = %s, want pending", got.Status)
	}
	if !got.StartTime.Equal(a.StartTime) || !got.EndTime.Equal(a.EndTime) {
		t.Fatal("appointment times must not change on a reschedule request")
	}

	if len(store.threads) != 1 {
		t.Fatalf("threads = %d, want 1", len(store.threads))
	}
	th := store.threads[0]
	if th.Subject != "Reschedule Request" {
		t.Fatalf("subject = %q", th.Subject)
	}
	if th.Priority != "high" || th.Status != "open" || th.UnreadStaff != 1 {
		t.Fatalf("thread attrs = %s/%s/%d, want high/open/1", th.Priority, th.Status, th.UnreadStaff)
	}
	if th.AppointmentID != a.ID || th.SalonID != a.SalonID || th.CustomerID != a.CustomerID {
		t.Fatal("thread not linked to appointment")
	}

	var meta map[string]RescheduleMetadata
	if err := json.Unmarshal(th.Metadata, &meta); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	req, ok := meta["reschedule_request"]
	if !ok {
		t.Fatal("metadata missing reschedule_request")
	}
	if req.CurrentTime != a.StartTime.UTC().Format(time.RFC3339) {
		t.Fatalf("current_time = %q", req.CurrentTime)
	}
	if req.NewTime != newTime.UTC().Format(time.RFC3339) {
		t.Fatalf("new_time = %q", req.NewTime)
	}
	if req.Reason != "Work trip came up" {
		t.Fatalf("reason = %q", req.Reason)
	}
}

func TestRequestReschedule_NotOwner(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	svc := NewService(store, testLogger())

	err := svc.RequestReschedule(context.Background(), a.ID, uuid.NewString(), now.Add(96*time.Hour), "sick")
	wantKind(t, err, apperr.KindPermission, "Not authorized to reschedule this appointment")
	if len(store.threads) != 0 {
		t.Fatal("thread created for denied request")
	}
}

func TestRequestReschedule_TerminalStatus(t *testing.T) {
	now := time.Now()
	for _, status := range []lifecycle.Status{lifecycle.StatusCancelled, lifecycle.StatusCompleted} {
		store := newFakeStore()
		a := seedAppointment(store, status, now.Add(48*time.Hour))
		svc := NewService(store, testLogger())

		err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), "change of plans")
		wantKind(t, err, apperr.KindConflict, "Cannot reschedule "+string(status)+" appointment")
		if len(store.threads) != 0 {
			t.Fatalf("thread created for %s appointment", status)
		}
	}
}

func TestRequestReschedule_SalonInactive(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	salon := store.salons[a.SalonID]
	salon.IsActive = false
	store.salons[a.SalonID] = salon
	svc := NewService(store, testLogger())

	err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), "change of plans")
	wantKind(t, err, apperr.KindNotFound, "Salon not available")
}

func TestRequestReschedule_SalonMissing(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	delete(store.salons, a.SalonID)
	svc := NewService(store, testLogger())

	err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), "change of plans")
	wantKind(t, err, apperr.KindNotFound, "Salon not available")
}

func TestRequestReschedule_InputValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(-time.Hour), "valid reason")
	wantKind(t, err, apperr.KindValidation, "Requested time must be in the future")

	err = svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), "no")
	wantKind(t, err, apperr.KindValidation, "Please provide a reason")

	err = svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), strings.Repeat("x", 501))
	wantKind(t, err, apperr.KindValidation, "Reason must be 500 characters or fewer")
}

func TestRequestReschedule_ReasonBoundsCountCharacters(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeStore()
	a := seedAppointment(store, lifecycle.StatusConfirmed, now.Add(48*time.Hour))
	svc := NewService(store, testLogger()).WithClock(func() time.Time { return now })

	// 500 multibyte characters is within bounds even though the byte
	// length is well past 500.
	err := svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), strings.Repeat("ä", 500))
	if err != nil {
		t.Fatalf("500-character multibyte reason rejected: %v", err)
	}

	err = svc.RequestReschedule(context.Background(), a.ID, a.CustomerID, now.Add(96*time.Hour), strings.Repeat("ä", 501))
	wantKind(t, err, apperr.KindValidation, "Reason must be 500 characters or fewer")
}
