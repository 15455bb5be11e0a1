package schedules

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/apperr"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedule"
)

// Tx is the transactional slice of storage the schedule flows run against.
// Everything called through a Tx commits or rolls back as one unit, so the
// conflict pre-check and the insert can never be split by a concurrent
// writer observing half the work.
type Tx interface {
	HasActiveScheduleForDay(ctx context.Context, staffID, salonID, day, excludeID string) (bool, error)
	InsertSchedule(ctx context.Context, s *model.StaffSchedule) (string, error)
	InsertSchedulesBatch(ctx context.Context, scheds []model.StaffSchedule) ([]string, error)
	GetSchedule(ctx context.Context, scheduleID string) (model.StaffSchedule, error)
	UpdateSchedule(ctx context.Context, s *model.StaffSchedule) error
	DeactivateSchedule(ctx context.Context, scheduleID string) error
	InsertEvent(ctx context.Context, eventType, aggregateID string, payload []byte) error
}

type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetSalon(ctx context.Context, salonID string) (model.Salon, error)
	SalonNotFound(err error) bool
	StaffBelongsToSalon(ctx context.Context, staffID, salonID string) (bool, error)
	ListSchedules(ctx context.Context, salonID, staffID string) ([]model.StaffSchedule, error)
	ScheduleUniqueViolation(err error) bool
	ScheduleNotFound(err error) bool
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ScheduleInput is one unvalidated schedule entry as it arrives over the
// wire. Clock fields are "HH:MM"; empty break fields mean no break.
type ScheduleInput struct {
	Day            string
	Start          string
	End            string
	BreakStart     string
	BreakEnd       string
	EffectiveFrom  *time.Time
	EffectiveUntil *time.Time
}

const conflictMsg = "Staff member already has a schedule for this day"

type Caller struct {
	UserID string
	Role   string
}

// authorize requires the caller to own the salon or hold the admin role.
// Staff cannot edit their own schedules.
func (s *Service) authorize(ctx context.Context, caller Caller, salonID string) (model.Salon, error) {
	salon, err := s.store.GetSalon(ctx, salonID)
	if err != nil {
		if s.store.SalonNotFound(err) {
			return model.Salon{}, apperr.NotFound("Salon not found")
		}
		return model.Salon{}, apperr.System("failed to load salon", err)
	}
	if caller.Role != "admin" && caller.UserID != salon.OwnerID {
		return model.Salon{}, apperr.Permission("Not authorized to manage schedules for this salon")
	}
	return salon, nil
}

func (s *Service) buildSchedule(salonID, staffID string, in ScheduleInput) (model.StaffSchedule, error) {
	shift, err := schedule.NewShift(in.Day, in.Start, in.End, in.BreakStart, in.BreakEnd)
	if err != nil {
		return model.StaffSchedule{}, err
	}
	if err := schedule.ValidateEffectiveRange(in.EffectiveFrom, in.EffectiveUntil); err != nil {
		return model.StaffSchedule{}, err
	}
	return model.StaffSchedule{
		SalonID:        salonID,
		StaffID:        staffID,
		DayOfWeek:      shift.Day,
		StartMin:       shift.StartMin,
		EndMin:         shift.EndMin,
		BreakStartMin:  shift.BreakStartMin,
		BreakEndMin:    shift.BreakEndMin,
		EffectiveFrom:  in.EffectiveFrom,
		EffectiveUntil: in.EffectiveUntil,
		IsActive:       true,
	}, nil
}

func (s *Service) checkStaff(ctx context.Context, staffID, salonID string) error {
	ok, err := s.store.StaffBelongsToSalon(ctx, staffID, salonID)
	if err != nil {
		return apperr.System("failed to verify staff", err)
	}
	if !ok {
		return apperr.NotFound("Staff member not found")
	}
	return nil
}

// Create adds a single weekly schedule for a staff member. At most one
// active schedule may exist per (staff, salon, day); the pre-check produces
// the friendly conflict message and the partial unique index backstops any
// race, mapped to the same message.
func (s *Service) Create(ctx context.Context, caller Caller, salonID, staffID string, in ScheduleInput) (string, error) {
	if _, err := s.authorize(ctx, caller, salonID); err != nil {
		return "", err
	}
	if err := s.checkStaff(ctx, staffID, salonID); err != nil {
		return "", err
	}
	sched, err := s.buildSchedule(salonID, staffID, in)
	if err != nil {
		return "", err
	}

	var id string
	err = s.store.InTx(ctx, func(tx Tx) error {
		conflict, err := tx.HasActiveScheduleForDay(ctx, staffID, salonID, sched.DayOfWeek, "")
		if err != nil {
			return err
		}
		if conflict {
			return apperr.Conflict(conflictMsg)
		}
		id, err = tx.InsertSchedule(ctx, &sched)
		if err != nil {
			return err
		}
		return s.insertScheduleEvent(ctx, tx, salonID, staffID, "created", []string{id})
	})
	if err != nil {
		return "", s.classify(err)
	}

	s.logger.Info("schedule created", "salon_id", salonID, "staff_id", staffID, "day", sched.DayOfWeek)
	return id, nil
}

// SetWeek creates a full weekly roster in one shot. Every entry is validated
// and pre-checked before any row is written, and the batch insert shares one
// transaction, so a single bad day leaves nothing behind.
func (s *Service) SetWeek(ctx context.Context, caller Caller, salonID, staffID string, inputs []ScheduleInput) ([]string, error) {
	if _, err := s.authorize(ctx, caller, salonID); err != nil {
		return nil, err
	}
	if err := s.checkStaff(ctx, staffID, salonID); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, apperr.Validation("At least one schedule entry is required")
	}
	if len(inputs) > len(schedule.Days) {
		return nil, apperr.Validation("At most one schedule entry per day")
	}

	scheds := make([]model.StaffSchedule, 0, len(inputs))
	seen := map[string]bool{}
	for _, in := range inputs {
		sched, err := s.buildSchedule(salonID, staffID, in)
		if err != nil {
			return nil, err
		}
		if seen[sched.DayOfWeek] {
			return nil, apperr.Validationf("Duplicate day in schedule: %s", sched.DayOfWeek)
		}
		seen[sched.DayOfWeek] = true
		scheds = append(scheds, sched)
	}

	var ids []string
	err := s.store.InTx(ctx, func(tx Tx) error {
		for _, sched := range scheds {
			conflict, err := tx.HasActiveScheduleForDay(ctx, staffID, salonID, sched.DayOfWeek, "")
			if err != nil {
				return err
			}
			if conflict {
				return apperr.Conflict(conflictMsg)
			}
		}
		var err error
		ids, err = tx.InsertSchedulesBatch(ctx, scheds)
		if err != nil {
			return err
		}
		return s.insertScheduleEvent(ctx, tx, salonID, staffID, "week_set", ids)
	})
	if err != nil {
		return nil, s.classify(err)
	}

	s.logger.Info("weekly schedule set", "salon_id", salonID, "staff_id", staffID, "days", len(ids))
	return ids, nil
}

// Update rewrites one schedule in place. The conflict check excludes the
// schedule's own id so changing only the hours of an existing day never
// conflicts with itself.
func (s *Service) Update(ctx context.Context, caller Caller, salonID, scheduleID string, in ScheduleInput) error {
	if _, err := s.authorize(ctx, caller, salonID); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx Tx) error {
		existing, err := tx.GetSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if existing.SalonID != salonID || !existing.IsActive {
			return apperr.NotFound("Schedule not found")
		}

		sched, err := s.buildSchedule(salonID, existing.StaffID, in)
		if err != nil {
			return err
		}
		sched.ID = existing.ID

		conflict, err := tx.HasActiveScheduleForDay(ctx, existing.StaffID, salonID, sched.DayOfWeek, existing.ID)
		if err != nil {
			return err
		}
		if conflict {
			return apperr.Conflict(conflictMsg)
		}
		if err := tx.UpdateSchedule(ctx, &sched); err != nil {
			return err
		}
		return s.insertScheduleEvent(ctx, tx, salonID, existing.StaffID, "updated", []string{existing.ID})
	})
	if err != nil {
		return s.classify(err)
	}

	s.logger.Info("schedule updated", "salon_id", salonID, "schedule_id", scheduleID)
	return nil
}

// Remove deactivates a schedule. Soft delete keeps history and frees the
// day slot for a replacement.
func (s *Service) Remove(ctx context.Context, caller Caller, salonID, scheduleID string) error {
	if _, err := s.authorize(ctx, caller, salonID); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx Tx) error {
		existing, err := tx.GetSchedule(ctx, scheduleID)
		if err != nil {
			return err
		}
		if existing.SalonID != salonID || !existing.IsActive {
			return apperr.NotFound("Schedule not found")
		}
		if err := tx.DeactivateSchedule(ctx, scheduleID); err != nil {
			return err
		}
		return s.insertScheduleEvent(ctx, tx, salonID, existing.StaffID, "removed", []string{scheduleID})
	})
	if err != nil {
		return s.classify(err)
	}

	s.logger.Info("schedule removed", "salon_id", salonID, "schedule_id", scheduleID)
	return nil
}

func (s *Service) List(ctx context.Context, caller Caller, salonID, staffID string) ([]model.StaffSchedule, error) {
	if _, err := s.authorize(ctx, caller, salonID); err != nil {
		return nil, err
	}
	scheds, err := s.store.ListSchedules(ctx, salonID, staffID)
	if err != nil {
		return nil, apperr.System("failed to list schedules", err)
	}
	return scheds, nil
}

func (s *Service) insertScheduleEvent(ctx context.Context, tx Tx, salonID, staffID, action string, scheduleIDs []string) error {
	payload, err := json.Marshal(map[string]any{
		"salon_id":     salonID,
		"staff_id":     staffID,
		"action":       action,
		"schedule_ids": scheduleIDs,
		"occurred_at":  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return tx.InsertEvent(ctx, "salon.schedule.updated.v1", staffID, payload)
}

func (s *Service) classify(err error) error {
	if s.store.ScheduleUniqueViolation(err) {
		return apperr.Conflict(conflictMsg)
	}
	if s.store.ScheduleNotFound(err) {
		return apperr.NotFound("Schedule not found")
	}
	if apperr.KindOf(err) != apperr.KindSystem {
		return err
	}
	return apperr.System("schedule operation failed", err)
}
