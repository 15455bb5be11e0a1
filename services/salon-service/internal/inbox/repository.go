package inbox

import (
	"context"

	"github.com/tomide-adeyemi/salonbook/libs/db"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record inserts the event id and reports whether this is the first time the
// event was seen. A duplicate hits the unique index and returns (false, nil).
func (r *Repository) Record(ctx context.Context, eventID string, eventType string) (bool, error) {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO inbox_events (event_id, event_type)
		VALUES ($1, $2)
	`, eventID, eventType)
	if err == nil {
		return true, nil
	}
	if db.IsUniqueViolation(err) {
		return false, nil
	}
	return false, err
}

// Remove undoes Record after a failed handler so a redelivery of the same
// event is treated as first-seen again.
func (r *Repository) Remove(ctx context.Context, eventID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM inbox_events WHERE event_id = $1
	`, eventID)
	return err
}
