package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/consumer"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/email"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/reminders"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/sms"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/storage"
)

// Dispatcher turns appointment lifecycle events into customer messages.
// Malformed events are logged and dropped rather than retried; transient
// failures (db, provider) bubble up so the consumer retries.
type Dispatcher struct {
	pool         *db.Pool
	repo         *storage.Repository
	outboxRepo   *outbox.Repository
	reminderRepo *reminders.Repository
	email        email.Sender
	sms          sms.Sender
	logger       *slog.Logger
	reminderLead time.Duration
}

type Config struct {
	ReminderLead time.Duration
}

func New(pool *db.Pool, repo *storage.Repository, outboxRepo *outbox.Repository, reminderRepo *reminders.Repository, emailSender email.Sender, smsSender sms.Sender, logger *slog.Logger, cfg Config) *Dispatcher {
	if cfg.ReminderLead <= 0 {
		cfg.ReminderLead = 24 * time.Hour
	}
	return &Dispatcher{
		pool:         pool,
		repo:         repo,
		outboxRepo:   outboxRepo,
		reminderRepo: reminderRepo,
		email:        emailSender,
		sms:          smsSender,
		logger:       logger,
		reminderLead: cfg.ReminderLead,
	}
}

type userCreatedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
}

// ContactHandler projects auth.user.created.v1 into the contacts table.
func (d *Dispatcher) ContactHandler() consumer.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt userCreatedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			d.logger.Error("invalid user created payload", "err", err)
			return nil
		}
		if evt.UserID == "" || evt.Email == "" {
			d.logger.Error("user created event missing user_id or email")
			return nil
		}
		return d.repo.UpsertContact(ctx, storage.Contact{
			UserID: evt.UserID,
			Email:  evt.Email,
			Phone:  evt.Phone,
			Name:   evt.Name,
		})
	}
}

// leadFor resolves the reminder lead, preferring the salon's stored
// override over the service default. Lookup failures fall back to the
// default rather than blocking the confirmation.
func (d *Dispatcher) leadFor(ctx context.Context, salonID string) time.Duration {
	hours, found, err := d.repo.GetReminderPref(ctx, salonID)
	if err != nil {
		d.logger.Warn("reminder pref lookup failed", "salon_id", salonID, "err", err)
		return d.reminderLead
	}
	if !found || hours <= 0 {
		return d.reminderLead
	}
	return time.Duration(hours) * time.Hour
}

type appointmentEvent struct {
	AppointmentID string `json:"appointment_id"`
	SalonID       string `json:"salon_id"`
	CustomerID    string `json:"customer_id"`
	StaffID       string `json:"staff_id"`
	StartTime     string `json:"start_time"`
}

func (e appointmentEvent) valid() bool {
	return e.AppointmentID != "" && e.SalonID != "" && e.CustomerID != ""
}

// CreatedHandler sends the booking confirmation and schedules the
// pre-appointment reminder in the same transaction as the outbox record.
func (d *Dispatcher) CreatedHandler() consumer.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		evt, startTime, ok := d.decodeAppointment(msg.Value, "appointment.created.v1")
		if !ok {
			return nil
		}

		contact, found, err := d.repo.GetContact(ctx, evt.CustomerID)
		if err != nil {
			return err
		}
		if !found {
			return d.recordSkipped(ctx, evt, KindBookingConfirmed, "no contact on file")
		}

		m := ConfirmationMessage(contact.Name, startTime)
		if err := d.deliver(ctx, evt, KindBookingConfirmed, contact, m); err != nil {
			return err
		}

		remindAt := startTime.Add(-d.leadFor(ctx, evt.SalonID))
		if !remindAt.After(time.Now().UTC()) {
			// Short-lead bookings get no reminder; the confirmation just went out.
			return nil
		}
		tx, err := d.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := d.reminderRepo.Insert(ctx, tx, reminders.Job{
			IdempotencyKey: evt.AppointmentID + "|" + remindAt.UTC().Format(time.RFC3339) + "|email",
			AppointmentID:  evt.AppointmentID,
			SalonID:        evt.SalonID,
			CustomerID:     evt.CustomerID,
			Channel:        "email",
			StartTime:      startTime,
			RemindAt:       remindAt,
		}); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}
}

// CancelledHandler sends the cancellation notice and drops any reminder
// still pending for the appointment.
func (d *Dispatcher) CancelledHandler() consumer.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		evt, startTime, ok := d.decodeAppointment(msg.Value, "appointment.cancelled.v1")
		if !ok {
			return nil
		}

		tx, err := d.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := d.reminderRepo.CancelForAppointment(ctx, tx, evt.AppointmentID); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}

		contact, found, err := d.repo.GetContact(ctx, evt.CustomerID)
		if err != nil {
			return err
		}
		if !found {
			return d.recordSkipped(ctx, evt, KindBookingCancelled, "no contact on file")
		}
		return d.deliver(ctx, evt, KindBookingCancelled, contact, CancellationMessage(contact.Name, startTime))
	}
}

// RescheduleHandler acknowledges the customer's reschedule request.
func (d *Dispatcher) RescheduleHandler() consumer.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt appointmentEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			d.logger.Error("invalid reschedule payload", "err", err)
			return nil
		}
		if !evt.valid() {
			d.logger.Error("reschedule event missing ids")
			return nil
		}

		contact, found, err := d.repo.GetContact(ctx, evt.CustomerID)
		if err != nil {
			return err
		}
		if !found {
			return d.recordSkipped(ctx, evt, KindRescheduleRequested, "no contact on file")
		}
		return d.deliver(ctx, evt, KindRescheduleRequested, contact, RescheduleAckMessage(contact.Name))
	}
}

// ReminderDueHandler delivers the reminder the worker queued, over the
// channel the job asked for.
func (d *Dispatcher) ReminderDueHandler() consumer.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt struct {
			appointmentEvent
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			d.logger.Error("invalid reminder payload", "err", err)
			return nil
		}
		if !evt.valid() {
			d.logger.Error("reminder event missing ids")
			return nil
		}
		startTime, err := time.Parse(time.RFC3339, evt.StartTime)
		if err != nil {
			d.logger.Error("invalid reminder start_time", "err", err)
			return nil
		}

		contact, found, err := d.repo.GetContact(ctx, evt.CustomerID)
		if err != nil {
			return err
		}
		if !found {
			return d.recordSkipped(ctx, evt.appointmentEvent, KindReminder, "no contact on file")
		}

		m := ReminderMessage(contact.Name, startTime)
		if strings.EqualFold(evt.Channel, "sms") && contact.Phone != "" {
			return d.deliverSMS(ctx, evt.appointmentEvent, KindReminder, contact, m)
		}
		return d.deliver(ctx, evt.appointmentEvent, KindReminder, contact, m)
	}
}

func (d *Dispatcher) decodeAppointment(raw []byte, eventType string) (appointmentEvent, time.Time, bool) {
	var evt appointmentEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		d.logger.Error("invalid event payload", "event_type", eventType, "err", err)
		return evt, time.Time{}, false
	}
	if !evt.valid() {
		d.logger.Error("event missing ids", "event_type", eventType)
		return evt, time.Time{}, false
	}
	startTime, err := time.Parse(time.RFC3339, evt.StartTime)
	if err != nil {
		d.logger.Error("invalid start_time", "event_type", eventType, "err", err)
		return evt, time.Time{}, false
	}
	return evt, startTime, true
}

func (d *Dispatcher) deliver(ctx context.Context, evt appointmentEvent, kind string, contact storage.Contact, m Message) error {
	status := "sent"
	providerID := "smtp"
	reason := ""
	if err := d.email.Send(contact.Email, m.Subject, m.Body); err != nil {
		status = "failed"
		reason = err.Error()
		d.logger.Error("email send failed", "err", err, "recipient", contact.Email, "kind", kind)
	}
	return d.record(ctx, evt, kind, "email", contact.Email, status, providerID, reason)
}

func (d *Dispatcher) deliverSMS(ctx context.Context, evt appointmentEvent, kind string, contact storage.Contact, m Message) error {
	status := "sent"
	reason := ""
	if err := d.sms.Send(ctx, contact.Phone, m.Body); err != nil {
		status = "failed"
		reason = err.Error()
		d.logger.Error("sms send failed", "err", err, "recipient", contact.Phone, "kind", kind)
	}
	return d.record(ctx, evt, kind, "sms", contact.Phone, status, d.sms.ProviderID(), reason)
}

func (d *Dispatcher) recordSkipped(ctx context.Context, evt appointmentEvent, kind, reason string) error {
	d.logger.Warn("notification skipped", "appointment_id", evt.AppointmentID, "kind", kind, "reason", reason)
	return d.record(ctx, evt, kind, "email", "", "skipped", "", reason)
}

// record persists the attempt and enqueues the matching outbox event so
// downstream consumers (analytics) see delivery outcomes.
func (d *Dispatcher) record(ctx context.Context, evt appointmentEvent, kind, channel, recipient, status, providerID, reason string) error {
	if err := d.repo.Insert(ctx, storage.Notification{
		AppointmentID: evt.AppointmentID,
		SalonID:       evt.SalonID,
		Kind:          kind,
		Channel:       channel,
		Recipient:     recipient,
		Status:        status,
	}); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	eventType := "notification.sent.v1"
	fields := map[string]any{
		"appointment_id": evt.AppointmentID,
		"salon_id":       evt.SalonID,
		"kind":           kind,
		"channel":        channel,
	}
	if status == "sent" {
		fields["provider_id"] = providerID
		fields["sent_at"] = time.Now().UTC().Format(time.RFC3339)
	} else {
		eventType = "notification.failed.v1"
		fields["error_reason"] = reason
		fields["failed_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := d.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   evt.AppointmentID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
