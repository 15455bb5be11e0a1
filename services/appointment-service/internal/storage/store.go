package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/outbox"
)

// Store combines the repositories into the transactional surface the
// appointment flows use. Mutations lock the appointment row, run the
// caller's decision while the lock is held, and commit the transition
// together with its outbox event.
type Store struct {
	appointments *AppointmentRepository
	threads      *ThreadRepository
	salons       *SalonCacheRepository
	outbox       *outbox.Repository
	pool         *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{
		appointments: NewAppointmentRepository(pool),
		threads:      NewThreadRepository(pool),
		salons:       NewSalonCacheRepository(pool),
		outbox:       outbox.NewRepository(pool),
		pool:         pool,
	}
}

func (s *Store) CancelAppointment(ctx context.Context, appointmentID, updatedByID string, decide func(model.Appointment) error) (model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := s.appointments.GetForUpdate(ctx, tx, appointmentID)
	if err != nil {
		return model.Appointment{}, err
	}
	if err := decide(appt); err != nil {
		return model.Appointment{}, err
	}

	if err := s.appointments.SetStatus(ctx, tx, appt.ID, lifecycle.StatusCancelled, updatedByID); err != nil {
		return model.Appointment{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID,
		"salon_id":       appt.SalonID,
		"customer_id":    appt.CustomerID,
		"staff_id":       appt.StaffID,
		"start_time":     appt.StartTime.UTC().Format(time.RFC3339),
		"end_time":       appt.EndTime.UTC().Format(time.RFC3339),
		"cancelled_by":   updatedByID,
		"cancelled_at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return model.Appointment{}, err
	}
	if err := s.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     "appointment.cancelled.v1",
		Payload:       payload,
	}); err != nil {
		return model.Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	appt.Status = lifecycle.StatusCancelled
	return appt, nil
}

func (s *Store) OpenRescheduleRequest(ctx context.Context, appointmentID, updatedByID string, decide func(model.Appointment) (*model.MessageThread, error)) (model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := s.appointments.GetForUpdate(ctx, tx, appointmentID)
	if err != nil {
		return model.Appointment{}, err
	}
	thread, err := decide(appt)
	if err != nil {
		return model.Appointment{}, err
	}

	threadID, err := s.threads.Create(ctx, tx, thread)
	if err != nil {
		return model.Appointment{}, err
	}
	if err := s.appointments.SetStatus(ctx, tx, appt.ID, lifecycle.StatusPending, updatedByID); err != nil {
		return model.Appointment{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID,
		"salon_id":       appt.SalonID,
		"customer_id":    appt.CustomerID,
		"staff_id":       appt.StaffID,
		"thread_id":      threadID,
		"requested_at":   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return model.Appointment{}, err
	}
	if err := s.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     "appointment.reschedule_requested.v1",
		Payload:       payload,
	}); err != nil {
		return model.Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	appt.Status = lifecycle.StatusPending
	return appt, nil
}

func (s *Store) GetSalon(ctx context.Context, salonID string) (model.Salon, error) {
	return s.salons.Get(ctx, salonID)
}

func (s *Store) SalonNotFound(err error) bool { return db.IsNotFound(err) }

func (s *Store) AppointmentNotFound(err error) bool { return db.IsNotFound(err) }

func (s *Store) ListByCustomer(ctx context.Context, customerID string, limit int) ([]model.Appointment, error) {
	return s.appointments.ListByCustomer(ctx, customerID, limit)
}

func (s *Store) ListBySalon(ctx context.Context, salonID string, limit int) ([]model.Appointment, error) {
	return s.appointments.ListBySalon(ctx, salonID, limit)
}

// Appointments exposes the underlying repository for flows that do not need
// the transactional wrapper (booking creation, slot queries).
func (s *Store) Appointments() *AppointmentRepository { return s.appointments }

func (s *Store) Salons() *SalonCacheRepository { return s.salons }
