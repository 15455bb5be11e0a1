package storage

import (
	"context"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

// SalonCacheRepository keeps a local replica of salon records, fed by
// salon.updated.v1 events. Appointment flows only need the active flag and
// the owner, so the row is deliberately narrow.
type SalonCacheRepository struct {
	pool *db.Pool
}

func NewSalonCacheRepository(pool *db.Pool) *SalonCacheRepository {
	return &SalonCacheRepository{pool: pool}
}

func (r *SalonCacheRepository) Get(ctx context.Context, salonID string) (model.Salon, error) {
	var s model.Salon
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, COALESCE(owner_id::text, ''), is_active
		FROM salons_cache
		WHERE id = $1
	`, salonID).Scan(&s.ID, &s.Name, &s.OwnerID, &s.IsActive)
	return s, err
}

func (r *SalonCacheRepository) Upsert(ctx context.Context, s model.Salon) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO salons_cache (id, name, owner_id, is_active, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			owner_id = EXCLUDED.owner_id,
			is_active = EXCLUDED.is_active,
			updated_at = now()
	`, s.ID, s.Name, s.OwnerID, s.IsActive)
	return err
}
