package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tomide-adeyemi/salonbook/libs/db"
)

// Notification is a delivery attempt record, one row per message handed to
// a provider (or dropped before handoff).
type Notification struct {
	AppointmentID string
	SalonID       string
	Kind          string
	Channel       string
	Recipient     string
	Payload       map[string]any
	Status        string
}

// Contact is the locally projected identity of a user, maintained from
// auth.user.created.v1 events. Appointment events carry IDs only; this
// table turns a customer_id into an address to deliver to.
type Contact struct {
	UserID string
	Email  string
	Phone  string
	Name   string
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO notifications (appointment_id, salon_id, kind, channel, recipient, payload, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.AppointmentID, n.SalonID, n.Kind, n.Channel, n.Recipient, payload, n.Status)
	return err
}

func (r *Repository) ListForAppointment(ctx context.Context, appointmentID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_id::text, salon_id::text, kind, channel, recipient, payload, status
		FROM notifications
		WHERE appointment_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, appointmentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var raw []byte
		if err := rows.Scan(&n.AppointmentID, &n.SalonID, &n.Kind, &n.Channel, &n.Recipient, &raw, &n.Status); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &n.Payload); err != nil {
				return nil, err
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repository) UpsertContact(ctx context.Context, c Contact) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contacts (user_id, email, phone, name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			name = EXCLUDED.name,
			updated_at = EXCLUDED.updated_at
	`, c.UserID, c.Email, c.Phone, c.Name, time.Now().UTC())
	return err
}

// UpsertReminderPref stores a salon's preferred reminder lead in hours.
func (r *Repository) UpsertReminderPref(ctx context.Context, salonID string, leadHours int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO salon_reminder_prefs (salon_id, lead_hours, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (salon_id) DO UPDATE
		SET lead_hours = EXCLUDED.lead_hours,
			updated_at = EXCLUDED.updated_at
	`, salonID, leadHours, time.Now().UTC())
	return err
}

// GetReminderPref returns found=false when the salon has no override, in
// which case the service-wide default lead applies.
func (r *Repository) GetReminderPref(ctx context.Context, salonID string) (int, bool, error) {
	var hours int
	err := r.pool.QueryRow(ctx, `
		SELECT lead_hours FROM salon_reminder_prefs WHERE salon_id = $1
	`, salonID).Scan(&hours)
	if db.IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return hours, true, nil
}

// GetContact returns found=false when the user has never been projected.
func (r *Repository) GetContact(ctx context.Context, userID string) (Contact, bool, error) {
	var c Contact
	err := r.pool.QueryRow(ctx, `
		SELECT user_id::text, email, COALESCE(phone, ''), COALESCE(name, '')
		FROM contacts
		WHERE user_id = $1
	`, userID).Scan(&c.UserID, &c.Email, &c.Phone, &c.Name)
	if db.IsNotFound(err) {
		return Contact{}, false, nil
	}
	if err != nil {
		return Contact{}, false, err
	}
	return c, true, nil
}
