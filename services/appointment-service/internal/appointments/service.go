package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/apperr"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

// Store is the persistence surface the appointment flows need. The two
// mutating calls load the appointment under a row lock, run the decide
// closure while the lock is held, and only apply the transition when decide
// returns nil, so a status check can never race a concurrent transition.
type Store interface {
	CancelAppointment(ctx context.Context, appointmentID, updatedByID string, decide func(model.Appointment) error) (model.Appointment, error)
	OpenRescheduleRequest(ctx context.Context, appointmentID, updatedByID string, decide func(model.Appointment) (*model.MessageThread, error)) (model.Appointment, error)
	GetSalon(ctx context.Context, salonID string) (model.Salon, error)
	SalonNotFound(err error) bool
	AppointmentNotFound(err error) bool
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]model.Appointment, error)
	ListBySalon(ctx context.Context, salonID string, limit int) ([]model.Appointment, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// WithClock overrides the time source; used by tests to pin the
// cancellation window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Cancel performs a customer-initiated cancellation. Order of checks:
// existence, ownership, terminal status, cancellation window. A repeated
// cancel is rejected with a conflict rather than treated as success, so
// double submits surface to the caller.
func (s *Service) Cancel(ctx context.Context, appointmentID, customerID string) error {
	if err := validateID(appointmentID, "appointment id"); err != nil {
		return err
	}

	now := s.now()
	_, err := s.store.CancelAppointment(ctx, appointmentID, customerID, func(a model.Appointment) error {
		if a.CustomerID != customerID {
			return apperr.Permission("Not authorized to cancel this appointment")
		}
		if a.Status == lifecycle.StatusCancelled {
			return apperr.Conflict("Appointment is already cancelled")
		}
		if !lifecycle.CanCancel(a.Status) {
			return apperr.Conflictf("Cannot cancel %s appointment", a.Status)
		}
		return lifecycle.CheckCancellationWindow(a.StartTime, now)
	})
	if err != nil {
		return s.classify(err, "Appointment not found", "failed to cancel appointment")
	}

	s.logger.Info("appointment cancelled",
		"appointment_id", appointmentID,
		"customer_id", customerID,
	)
	return nil
}

// RescheduleMetadata is the payload attached to the thread a reschedule
// request opens.
type RescheduleMetadata struct {
	CurrentTime string `json:"current_time"`
	NewTime     string `json:"new_time"`
	Reason      string `json:"reason"`
}

const (
	rescheduleSubject  = "Reschedule Request"
	reschedulePriority = "high"
)

// RequestReschedule opens a high-priority thread for the salon and drops the
// appointment back to pending for staff review. The requested time is only
// carried in the thread metadata; the appointment's own times are untouched
// until staff act on the request. Thread insert and status flip commit in
// one transaction.
func (s *Service) RequestReschedule(ctx context.Context, appointmentID, customerID string, newStartTime time.Time, reason string) error {
	if err := validateID(appointmentID, "appointment id"); err != nil {
		return err
	}
	if err := validateRescheduleInput(newStartTime, reason, s.now()); err != nil {
		return err
	}

	_, err := s.store.OpenRescheduleRequest(ctx, appointmentID, customerID, func(a model.Appointment) (*model.MessageThread, error) {
		if a.CustomerID != customerID {
			return nil, apperr.Permission("Not authorized to reschedule this appointment")
		}
		if !lifecycle.CanRequestReschedule(a.Status) {
			return nil, apperr.Conflictf("Cannot reschedule %s appointment", a.Status)
		}

		salon, err := s.store.GetSalon(ctx, a.SalonID)
		if err != nil {
			if s.store.SalonNotFound(err) {
				return nil, apperr.NotFound("Salon not available")
			}
			return nil, apperr.System("failed to resolve salon", err)
		}
		if !salon.IsActive {
			return nil, apperr.NotFound("Salon not available")
		}

		meta, err := json.Marshal(map[string]RescheduleMetadata{
			"reschedule_request": {
				CurrentTime: a.StartTime.UTC().Format(time.RFC3339),
				NewTime:     newStartTime.UTC().Format(time.RFC3339),
				Reason:      reason,
			},
		})
		if err != nil {
			return nil, apperr.System("failed to build thread metadata", err)
		}

		return &model.MessageThread{
			SalonID:         a.SalonID,
			CustomerID:      customerID,
			StaffID:         a.StaffID,
			AppointmentID:   a.ID,
			Subject:         rescheduleSubject,
			Status:          "open",
			Priority:        reschedulePriority,
			UnreadStaff:     1,
			Metadata:        meta,
			LastMessageByID: customerID,
		}, nil
	})
	if err != nil {
		return s.classify(err, "Appointment not found", "failed to request reschedule")
	}

	s.logger.Info("reschedule requested",
		"appointment_id", appointmentID,
		"customer_id", customerID,
		"new_time", newStartTime.UTC().Format(time.RFC3339),
	)
	return nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string, limit int) ([]model.Appointment, error) {
	appts, err := s.store.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, apperr.System("failed to list appointments", err)
	}
	return appts, nil
}

func (s *Service) ListForSalon(ctx context.Context, salonID string, limit int) ([]model.Appointment, error) {
	appts, err := s.store.ListBySalon(ctx, salonID, limit)
	if err != nil {
		return nil, apperr.System("failed to list appointments", err)
	}
	return appts, nil
}

// classify maps storage-level failures to the error taxonomy. Errors that
// already carry a kind pass through untouched.
func (s *Service) classify(err error, notFoundMsg, systemMsg string) error {
	if apperr.KindOf(err) != apperr.KindSystem {
		return err
	}
	if s.store.AppointmentNotFound(err) {
		return apperr.NotFound(notFoundMsg)
	}
	var e *apperr.Error
	if errors.As(err, &e) {
		return err
	}
	return apperr.System(systemMsg, err)
}

func validateID(id, field string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation("Invalid " + field)
	}
	return nil
}

func validateRescheduleInput(newStartTime time.Time, reason string, now time.Time) error {
	if newStartTime.IsZero() || !newStartTime.After(now) {
		return apperr.Validation("Requested time must be in the future")
	}
	runes := utf8.RuneCountInString(reason)
	if runes < 3 {
		return apperr.Validation("Please provide a reason")
	}
	if runes > 500 {
		return apperr.Validation("Reason must be 500 characters or fewer")
	}
	return nil
}
