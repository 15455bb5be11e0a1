package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

// ThreadRepository writes communication threads. A reschedule request always
// opens a fresh thread, it never appends to an existing one.
type ThreadRepository struct {
	pool *db.Pool
}

func NewThreadRepository(pool *db.Pool) *ThreadRepository {
	return &ThreadRepository{pool: pool}
}

func (r *ThreadRepository) Create(ctx context.Context, tx pgx.Tx, t *model.MessageThread) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO message_threads
			(id, salon_id, customer_id, staff_id, appointment_id,
			 subject, status, priority, unread_count_staff, metadata,
			 last_message_at, last_message_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), $11)
	`, id, t.SalonID, t.CustomerID, t.StaffID, t.AppointmentID,
		t.Subject, t.Status, t.Priority, t.UnreadStaff, t.Metadata, t.LastMessageByID)
	if err != nil {
		return "", err
	}
	return id, nil
}
