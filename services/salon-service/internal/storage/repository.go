package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/schedule"
)

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *Repository) GetSalon(ctx context.Context, salonID string) (model.Salon, error) {
	var s model.Salon
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, owner_id::text, timezone, is_active, created_at, updated_at
		FROM salons
		WHERE id = $1
	`, salonID).Scan(&s.ID, &s.Name, &s.OwnerID, &s.Timezone, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// CreateSalon provisions a salon under an ID minted by the auth service
// at registration. Replayed events are no-ops.
func (r *Repository) CreateSalon(ctx context.Context, tx pgx.Tx, id, name, ownerID, timezone string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO salons (id, name, owner_id, timezone, is_active)
		VALUES ($1, $2, $3, $4, true)
		ON CONFLICT (id) DO NOTHING
	`, id, name, ownerID, timezone)
	return err
}

func (r *Repository) UpdateSalon(ctx context.Context, tx pgx.Tx, salonID, name, timezone string, isActive bool) error {
	tag, err := tx.Exec(ctx, `
		UPDATE salons
		SET name = $2, timezone = $3, is_active = $4, updated_at = now()
		WHERE id = $1
	`, salonID, name, timezone, isActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) CreateStaff(ctx context.Context, salonID, userID, name string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO staff (salon_id, user_id, name, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id::text
	`, salonID, userID, name).Scan(&id)
	return id, err
}

func (r *Repository) ListStaff(ctx context.Context, salonID string, limit int) ([]model.Staff, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, salon_id::text, COALESCE(user_id::text, ''), name, is_active, created_at
		FROM staff
		WHERE salon_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, salonID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.SalonID, &s.UserID, &s.Name, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) CountActiveStaff(ctx context.Context, salonID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM staff WHERE salon_id = $1 AND is_active
	`, salonID).Scan(&n)
	return n, err
}

func (r *Repository) CreateService(ctx context.Context, s model.SalonService) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO salon_services (salon_id, name, duration_minutes, price, description)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id::text
	`, s.SalonID, s.Name, s.DurationMin, s.Price, s.Description).Scan(&id)
	return id, err
}

func (r *Repository) ListServices(ctx context.Context, salonID string, limit int) ([]model.SalonService, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, salon_id::text, name, duration_minutes,
		       COALESCE(price, ''), COALESCE(description, ''), created_at
		FROM salon_services
		WHERE salon_id = $1
		ORDER BY name
		LIMIT $2
	`, salonID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SalonService
	for rows.Next() {
		var s model.SalonService
		if err := rows.Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMin, &s.Price, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetService(ctx context.Context, serviceID, salonID string) (model.SalonService, error) {
	var s model.SalonService
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, salon_id::text, name, duration_minutes,
		       COALESCE(price, ''), COALESCE(description, ''), created_at
		FROM salon_services
		WHERE id = $1 AND salon_id = $2
	`, serviceID, salonID).Scan(&s.ID, &s.SalonID, &s.Name, &s.DurationMin, &s.Price, &s.Description, &s.CreatedAt)
	return s, err
}

func (r *Repository) DeleteService(ctx context.Context, serviceID, salonID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM salon_services WHERE id = $1 AND salon_id = $2
	`, serviceID, salonID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// StaffBelongsToSalon guards cross-tenant schedule writes.
func (r *Repository) StaffBelongsToSalon(ctx context.Context, staffID, salonID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM staff WHERE id = $1 AND salon_id = $2 AND is_active
		)
	`, staffID, salonID).Scan(&ok)
	return ok, err
}

const scheduleColumns = `
	id::text, salon_id::text, staff_id::text, day_of_week,
	start_minute, end_minute,
	COALESCE(break_start_minute, -1), COALESCE(break_end_minute, -1),
	effective_from, effective_until, is_active, created_at, updated_at
`

func scanSchedule(row pgx.Row) (model.StaffSchedule, error) {
	var s model.StaffSchedule
	err := row.Scan(
		&s.ID, &s.SalonID, &s.StaffID, &s.DayOfWeek,
		&s.StartMin, &s.EndMin,
		&s.BreakStartMin, &s.BreakEndMin,
		&s.EffectiveFrom, &s.EffectiveUntil, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// HasActiveScheduleForDay reports whether another active schedule already
// occupies (staff, salon, day). excludeID skips the row being updated so a
// schedule never conflicts with itself. The partial unique index on active
// rows remains the authoritative guard; this pre-check exists to produce a
// clean conflict message before the insert races.
func (r *Repository) HasActiveScheduleForDay(ctx context.Context, tx pgx.Tx, staffID, salonID, day, excludeID string) (bool, error) {
	var ok bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM staff_schedules
			WHERE staff_id = $1 AND salon_id = $2 AND day_of_week = $3 AND is_active
				AND ($4 = '' OR id::text <> $4)
		)
	`, staffID, salonID, day, excludeID).Scan(&ok)
	return ok, err
}

func breakParam(v int) any {
	if v == schedule.NoBreak {
		return nil
	}
	return v
}

func (r *Repository) InsertSchedule(ctx context.Context, tx pgx.Tx, s *model.StaffSchedule) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO staff_schedules
			(id, salon_id, staff_id, day_of_week, start_minute, end_minute,
			 break_start_minute, break_end_minute, effective_from, effective_until, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
	`, id, s.SalonID, s.StaffID, s.DayOfWeek, s.StartMin, s.EndMin,
		breakParam(s.BreakStartMin), breakParam(s.BreakEndMin), s.EffectiveFrom, s.EffectiveUntil)
	if err != nil {
		return "", err
	}
	return id, nil
}

// InsertSchedulesBatch writes a full week of schedules as one batch inside
// the caller's transaction. Any failed insert fails the batch, so a weekly
// setup is all-or-nothing.
func (r *Repository) InsertSchedulesBatch(ctx context.Context, tx pgx.Tx, scheds []model.StaffSchedule) ([]string, error) {
	batch := &pgx.Batch{}
	ids := make([]string, len(scheds))
	for i, s := range scheds {
		ids[i] = uuid.NewString()
		batch.Queue(`
			INSERT INTO staff_schedules
				(id, salon_id, staff_id, day_of_week, start_minute, end_minute,
				 break_start_minute, break_end_minute, effective_from, effective_until, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
		`, ids[i], s.SalonID, s.StaffID, s.DayOfWeek, s.StartMin, s.EndMin,
			breakParam(s.BreakStartMin), breakParam(s.BreakEndMin), s.EffectiveFrom, s.EffectiveUntil)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range scheds {
		if _, err := results.Exec(); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (r *Repository) GetSchedule(ctx context.Context, tx pgx.Tx, scheduleID string) (model.StaffSchedule, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM staff_schedules
		WHERE id = $1
		FOR UPDATE
	`, scheduleID)
	return scanSchedule(row)
}

func (r *Repository) UpdateSchedule(ctx context.Context, tx pgx.Tx, s *model.StaffSchedule) error {
	tag, err := tx.Exec(ctx, `
		UPDATE staff_schedules
		SET day_of_week = $2,
			start_minute = $3,
			end_minute = $4,
			break_start_minute = $5,
			break_end_minute = $6,
			effective_from = $7,
			effective_until = $8,
			updated_at = now()
		WHERE id = $1 AND is_active
	`, s.ID, s.DayOfWeek, s.StartMin, s.EndMin,
		breakParam(s.BreakStartMin), breakParam(s.BreakEndMin), s.EffectiveFrom, s.EffectiveUntil)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeactivateSchedule soft-deletes; history stays queryable and the partial
// unique index frees the (staff, salon, day) slot.
func (r *Repository) DeactivateSchedule(ctx context.Context, tx pgx.Tx, scheduleID string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE staff_schedules
		SET is_active = false, updated_at = now()
		WHERE id = $1 AND is_active
	`, scheduleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) ListSchedules(ctx context.Context, salonID, staffID string) ([]model.StaffSchedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM staff_schedules
		WHERE salon_id = $1 AND staff_id = $2 AND is_active
		ORDER BY array_position(ARRAY['sunday','monday','tuesday','wednesday','thursday','friday','saturday'], day_of_week)
	`, salonID, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StaffSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetActiveScheduleForDay resolves the shift effective on a concrete date.
func (r *Repository) GetActiveScheduleForDay(ctx context.Context, salonID, staffID, day string, date time.Time) (model.StaffSchedule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+scheduleColumns+`
		FROM staff_schedules
		WHERE salon_id = $1 AND staff_id = $2 AND day_of_week = $3 AND is_active
			AND (effective_from IS NULL OR effective_from <= $4)
			AND (effective_until IS NULL OR effective_until >= $4)
	`, salonID, staffID, day, date)
	return scanSchedule(row)
}

func (r *Repository) CreateTimeOff(ctx context.Context, salonID, staffID string, startTime, endTime time.Time, reason string) (string, error) {
	ok, err := r.StaffBelongsToSalon(ctx, staffID, salonID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", pgx.ErrNoRows
	}

	id := uuid.NewString()
	_, err = r.pool.Exec(ctx, `
		INSERT INTO staff_time_off (id, staff_id, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, id, staffID, startTime, endTime, reason)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) ListTimeOff(ctx context.Context, salonID, staffID string, from, to time.Time, limit int) ([]model.TimeOff, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT t.id::text, t.staff_id::text, t.start_time, t.end_time, t.reason, t.created_at
		FROM staff_time_off t
		JOIN staff s ON s.id = t.staff_id
		WHERE s.salon_id = $1
			AND t.staff_id = $2
			AND t.end_time > $3
			AND t.start_time < $4
		ORDER BY t.start_time ASC
		LIMIT $5
	`, salonID, staffID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TimeOff
	for rows.Next() {
		var t model.TimeOff
		if err := rows.Scan(&t.ID, &t.StaffID, &t.StartTime, &t.EndTime, &t.Reason, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SalonEntitlements is the locally cached subscription limit set, maintained
// from billing events.
type SalonEntitlements struct {
	SalonID            string
	Tier               string
	MaxStaff           int
	MaxMonthlyBookings int
}

func (r *Repository) UpsertSalonEntitlements(ctx context.Context, e SalonEntitlements) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO salon_entitlements (salon_id, tier, max_staff, max_monthly_bookings, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (salon_id) DO UPDATE
		SET tier = EXCLUDED.tier,
			max_staff = EXCLUDED.max_staff,
			max_monthly_bookings = EXCLUDED.max_monthly_bookings,
			updated_at = now()
	`, e.SalonID, e.Tier, e.MaxStaff, e.MaxMonthlyBookings)
	return err
}

func (r *Repository) GetSalonEntitlements(ctx context.Context, salonID string) (SalonEntitlements, bool, error) {
	var e SalonEntitlements
	err := r.pool.QueryRow(ctx, `
		SELECT salon_id::text, tier, max_staff, COALESCE(max_monthly_bookings, 0)
		FROM salon_entitlements
		WHERE salon_id = $1
	`, salonID).Scan(&e.SalonID, &e.Tier, &e.MaxStaff, &e.MaxMonthlyBookings)
	if db.IsNotFound(err) {
		return SalonEntitlements{}, false, nil
	}
	if err != nil {
		return SalonEntitlements{}, false, err
	}
	return e, true, nil
}
