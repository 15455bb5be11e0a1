package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/appointments"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

var errNoRows = errors.New("no rows")

type stubStore struct {
	appt  model.Appointment
	salon model.Salon
	found bool
}

func (s *stubStore) CancelAppointment(_ context.Context, appointmentID, updatedByID string, decide func(model.Appointment) error) (model.Appointment, error) {
	if !s.found || s.appt.ID != appointmentID {
		return model.Appointment{}, errNoRows
	}
	if err := decide(s.appt); err != nil {
		return model.Appointment{}, err
	}
	s.appt.Status = lifecycle.StatusCancelled
	return s.appt, nil
}

func (s *stubStore) OpenRescheduleRequest(_ context.Context, appointmentID, updatedByID string, decide func(model.Appointment) (*model.MessageThread, error)) (model.Appointment, error) {
	if !s.found || s.appt.ID != appointmentID {
		return model.Appointment{}, errNoRows
	}
	if _, err := decide(s.appt); err != nil {
		return model.Appointment{}, err
	}
	s.appt.Status = lifecycle.StatusPending
	return s.appt, nil
}

func (s *stubStore) GetSalon(_ context.Context, salonID string) (model.Salon, error) {
	if s.salon.ID != salonID {
		return model.Salon{}, errNoRows
	}
	return s.salon, nil
}

func (s *stubStore) SalonNotFound(err error) bool       { return errors.Is(err, errNoRows) }
func (s *stubStore) AppointmentNotFound(err error) bool { return errors.Is(err, errNoRows) }

func (s *stubStore) ListByCustomer(_ context.Context, customerID string, _ int) ([]model.Appointment, error) {
	if s.found && s.appt.CustomerID == customerID {
		return []model.Appointment{s.appt}, nil
	}
	return nil, nil
}

func (s *stubStore) ListBySalon(_ context.Context, salonID string, _ int) ([]model.Appointment, error) {
	if s.found && s.appt.SalonID == salonID {
		return []model.Appointment{s.appt}, nil
	}
	return nil, nil
}

func newHandler(store *stubStore, now time.Time) *AppointmentHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := appointments.NewService(store, logger).WithClock(func() time.Time { return now })
	return NewAppointmentHandler(svc, logger)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestCancelEndpoint_StatusMapping(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appt := model.Appointment{
		ID:         uuid.NewString(),
		SalonID:    uuid.NewString(),
		CustomerID: uuid.NewString(),
		StaffID:    uuid.NewString(),
		StartTime:  now.Add(48 * time.Hour),
		EndTime:    now.Add(49 * time.Hour),
		Status:     lifecycle.StatusConfirmed,
	}

	cases := []struct {
		name       string
		mutate     func(*stubStore)
		caller     string
		wantStatus int
		wantError  string
	}{
		{
			name:       "owner outside window succeeds",
			mutate:     func(*stubStore) {},
			caller:     appt.CustomerID,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong caller forbidden",
			mutate:     func(*stubStore) {},
			caller:     uuid.NewString(),
			wantStatus: http.StatusForbidden,
			wantError:  "Not authorized to cancel this appointment",
		},
		{
			name: "already cancelled conflicts",
			mutate: func(s *stubStore) {
				s.appt.Status = lifecycle.StatusCancelled
			},
			caller:     appt.CustomerID,
			wantStatus: http.StatusConflict,
			wantError:  "Appointment is already cancelled",
		},
		{
			name: "inside window rejected by policy",
			mutate: func(s *stubStore) {
				s.appt.StartTime = now.Add(2 * time.Hour)
			},
			caller:     appt.CustomerID,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Cannot cancel within 24 hours of appointment. Please contact the salon directly.",
		},
		{
			name: "unknown appointment not found",
			mutate: func(s *stubStore) {
				s.found = false
			},
			caller:     appt.CustomerID,
			wantStatus: http.StatusNotFound,
			wantError:  "Appointment not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{appt: appt, found: true}
			tc.mutate(store)
			h := newHandler(store, now)

			body := `{"appointment_id":"` + appt.ID + `"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/cancel", strings.NewReader(body))
			req.Header.Set("X-User-Id", tc.caller)
			rec := httptest.NewRecorder()

			h.Cancel(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if tc.wantError != "" {
				if env.Success {
					t.Fatal("success = true on error response")
				}
				if env.Error != tc.wantError {
					t.Fatalf("error = %q, want %q", env.Error, tc.wantError)
				}
			} else if !env.Success {
				t.Fatalf("success = false: %s", env.Error)
			}
		})
	}
}

func TestCancelEndpoint_RequiresIdentity(t *testing.T) {
	h := newHandler(&stubStore{}, time.Now())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/cancel", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRescheduleEndpoint_SalonUnavailable(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appt := model.Appointment{
		ID:         uuid.NewString(),
		SalonID:    uuid.NewString(),
		CustomerID: uuid.NewString(),
		StartTime:  now.Add(48 * time.Hour),
		EndTime:    now.Add(49 * time.Hour),
		Status:     lifecycle.StatusConfirmed,
	}
	store := &stubStore{appt: appt, found: true, salon: model.Salon{ID: appt.SalonID, IsActive: false}}
	h := newHandler(store, now)

	body := `{"appointment_id":"` + appt.ID + `","new_time":"` + now.Add(96*time.Hour).Format(time.RFC3339) + `","reason":"conflict with work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/reschedule", strings.NewReader(body))
	req.Header.Set("X-User-Id", appt.CustomerID)
	rec := httptest.NewRecorder()

	h.Reschedule(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "Salon not available" {
		t.Fatalf("error = %q", env.Error)
	}
}

func TestRescheduleEndpoint_Success(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	appt := model.Appointment{
		ID:         uuid.NewString(),
		SalonID:    uuid.NewString(),
		CustomerID: uuid.NewString(),
		StartTime:  now.Add(48 * time.Hour),
		EndTime:    now.Add(49 * time.Hour),
		Status:     lifecycle.StatusConfirmed,
	}
	store := &stubStore{appt: appt, found: true, salon: model.Salon{ID: appt.SalonID, IsActive: true}}
	h := newHandler(store, now)

	body := `{"appointment_id":"` + appt.ID + `","new_time":"` + now.Add(96*time.Hour).Format(time.RFC3339) + `","reason":"conflict with work"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/reschedule", strings.NewReader(body))
	req.Header.Set("X-User-Id", appt.CustomerID)
	rec := httptest.NewRecorder()

	h.Reschedule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if store.appt.Status != lifecycle.StatusPending {
		t.Fatalf("status = %s, want pending", store.appt.Status)
	}
}
