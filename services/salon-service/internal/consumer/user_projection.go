package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/storage"
)

type userCreatedEvent struct {
	UserID    string `json:"user_id"`
	SalonID   string `json:"salon_id"`
	SalonName string `json:"salon_name"`
	Role      string `json:"role"`
}

// UserProvisioningHandler creates the salon row when an owner registers.
// The auth service mints the salon ID so the owner's token is valid
// before this event lands; salon.updated.v1 goes out in the same
// transaction so downstream caches learn about the new tenant.
func UserProvisioningHandler(pool *db.Pool, repo *storage.Repository, outboxRepo *outbox.Repository, logger *slog.Logger) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt userCreatedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("decode auth.user.created.v1: %w", err)
		}
		if evt.Role != "owner" {
			return nil
		}
		if evt.UserID == "" || evt.SalonID == "" {
			return fmt.Errorf("owner created event missing user_id or salon_id")
		}
		name := strings.TrimSpace(evt.SalonName)
		if name == "" {
			name = "New Salon"
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if err := repo.CreateSalon(ctx, tx, evt.SalonID, name, evt.UserID, "UTC"); err != nil {
			return fmt.Errorf("create salon: %w", err)
		}

		payload, err := json.Marshal(map[string]any{
			"salon_id":  evt.SalonID,
			"name":      name,
			"owner_id":  evt.UserID,
			"is_active": true,
		})
		if err != nil {
			return err
		}
		if err := outboxRepo.Insert(ctx, tx, outbox.Event{
			AggregateType: "salon",
			AggregateID:   evt.SalonID,
			EventType:     "salon.updated.v1",
			Payload:       payload,
		}); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}

		logger.Info("salon provisioned", "salon_id", evt.SalonID, "owner_id", evt.UserID)
		return nil
	}
}
