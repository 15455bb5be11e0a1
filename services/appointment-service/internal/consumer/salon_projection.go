package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/model"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/storage"
)

type salonUpdatedEvent struct {
	SalonID  string `json:"salon_id"`
	Name     string `json:"name"`
	OwnerID  string `json:"owner_id"`
	IsActive bool   `json:"is_active"`
}

// SalonProjectionHandler applies salon.updated.v1 events to the local salon
// cache. The cache is what reschedule requests consult for salon liveness,
// so a stale-but-present row is preferred over a cross-service call.
func SalonProjectionHandler(salons *storage.SalonCacheRepository, logger *slog.Logger) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt salonUpdatedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("decode salon.updated.v1: %w", err)
		}
		if evt.SalonID == "" {
			return fmt.Errorf("salon.updated.v1 missing salon_id")
		}
		if err := salons.Upsert(ctx, model.Salon{
			ID:       evt.SalonID,
			Name:     evt.Name,
			OwnerID:  evt.OwnerID,
			IsActive: evt.IsActive,
		}); err != nil {
			return fmt.Errorf("upsert salon cache: %w", err)
		}
		logger.Info("salon cache updated", "salon_id", evt.SalonID, "is_active", evt.IsActive)
		return nil
	}
}
