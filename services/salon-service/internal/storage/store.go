package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedules"
)

// Store adapts the repository and outbox into the transactional surface the
// schedules service consumes.
type Store struct {
	repo       *Repository
	outboxRepo *outbox.Repository
	pool       *db.Pool
}

func NewStore(pool *db.Pool) *Store {
	return &Store{
		repo:       NewRepository(pool),
		outboxRepo: outbox.NewRepository(pool),
		pool:       pool,
	}
}

func (s *Store) Repository() *Repository { return s.repo }

func (s *Store) InTx(ctx context.Context, fn func(tx schedules.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&storeTx{repo: s.repo, outboxRepo: s.outboxRepo, tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) GetSalon(ctx context.Context, salonID string) (model.Salon, error) {
	return s.repo.GetSalon(ctx, salonID)
}

func (s *Store) SalonNotFound(err error) bool { return db.IsNotFound(err) }

func (s *Store) StaffBelongsToSalon(ctx context.Context, staffID, salonID string) (bool, error) {
	return s.repo.StaffBelongsToSalon(ctx, staffID, salonID)
}

func (s *Store) ListSchedules(ctx context.Context, salonID, staffID string) ([]model.StaffSchedule, error) {
	return s.repo.ListSchedules(ctx, salonID, staffID)
}

func (s *Store) ScheduleUniqueViolation(err error) bool { return db.IsUniqueViolation(err) }

func (s *Store) ScheduleNotFound(err error) bool { return db.IsNotFound(err) }

type storeTx struct {
	repo       *Repository
	outboxRepo *outbox.Repository
	tx         pgx.Tx
}

func (t *storeTx) HasActiveScheduleForDay(ctx context.Context, staffID, salonID, day, excludeID string) (bool, error) {
	return t.repo.HasActiveScheduleForDay(ctx, t.tx, staffID, salonID, day, excludeID)
}

func (t *storeTx) InsertSchedule(ctx context.Context, s *model.StaffSchedule) (string, error) {
	return t.repo.InsertSchedule(ctx, t.tx, s)
}

func (t *storeTx) InsertSchedulesBatch(ctx context.Context, scheds []model.StaffSchedule) ([]string, error) {
	return t.repo.InsertSchedulesBatch(ctx, t.tx, scheds)
}

func (t *storeTx) GetSchedule(ctx context.Context, scheduleID string) (model.StaffSchedule, error) {
	return t.repo.GetSchedule(ctx, t.tx, scheduleID)
}

func (t *storeTx) UpdateSchedule(ctx context.Context, s *model.StaffSchedule) error {
	return t.repo.UpdateSchedule(ctx, t.tx, s)
}

func (t *storeTx) DeactivateSchedule(ctx context.Context, scheduleID string) error {
	return t.repo.DeactivateSchedule(ctx, t.tx, scheduleID)
}

func (t *storeTx) InsertEvent(ctx context.Context, eventType, aggregateID string, payload []byte) error {
	return t.outboxRepo.Insert(ctx, t.tx, outbox.Event{
		AggregateType: "salon",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       payload,
	})
}
