package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/lifecycle"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

const appointmentColumns = `
	id::text, salon_id::text, customer_id::text, staff_id::text, service_id::text,
	start_time, end_time, duration_minutes, status,
	COALESCE(updated_by_id::text, ''), created_at, updated_at
`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	var status string
	err := row.Scan(
		&a.ID,
		&a.SalonID,
		&a.CustomerID,
		&a.StaffID,
		&a.ServiceID,
		&a.StartTime,
		&a.EndTime,
		&a.DurationMin,
		&status,
		&a.UpdatedByID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return model.Appointment{}, err
	}
	a.Status = lifecycle.Status(status)
	return a, nil
}

// GetForUpdate loads an appointment and locks the row for the rest of the
// transaction so the status check and the transition are one atomic step.
func (r *AppointmentRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (model.Appointment, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
		FOR UPDATE
	`, appointmentID)
	return scanAppointment(row)
}

// SetStatus applies a lifecycle transition, stamping who made it and when.
func (r *AppointmentRepository) SetStatus(ctx context.Context, tx pgx.Tx, appointmentID string, status lifecycle.Status, updatedByID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $2,
			updated_by_id = $3,
			updated_at = now()
		WHERE id = $1
	`, appointmentID, string(status), updatedByID)
	return err
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, a *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(salon_id, customer_id, staff_id, service_id, start_time, end_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text
	`, a.SalonID, a.CustomerID, a.StaffID, a.ServiceID, a.StartTime, a.EndTime, a.DurationMin, string(a.Status)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *AppointmentRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE customer_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListBySalon(ctx context.Context, salonID string, limit int) ([]model.Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE salon_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, salonID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListActiveIntervals returns pending and confirmed appointments touching
// [start, end) for one staff member. Cancelled and no-show rows do not block
// slot computation.
func (r *AppointmentRepository) ListActiveIntervals(ctx context.Context, salonID, staffID string, start, end time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE salon_id = $1
			AND staff_id = $2
			AND status IN ('pending', 'confirmed')
			AND start_time < $4
			AND end_time > $3
		ORDER BY start_time ASC
	`, salonID, staffID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
