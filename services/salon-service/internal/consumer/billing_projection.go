package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/storage"
)

type subscriptionActivatedEvent struct {
	SalonID            string `json:"salon_id"`
	Tier               string `json:"tier"`
	MaxStaff           int    `json:"max_staff"`
	MaxMonthlyBookings int    `json:"max_monthly_appointments"`
}

// BillingProjectionHandler applies billing.subscription.activated.v1 events
// to the local entitlements table. Staff-limit enforcement reads that table
// instead of calling the billing service on every request.
func BillingProjectionHandler(repo *storage.Repository, logger *slog.Logger) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var evt subscriptionActivatedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			return fmt.Errorf("decode billing.subscription.activated.v1: %w", err)
		}
		if evt.SalonID == "" {
			return fmt.Errorf("billing.subscription.activated.v1 missing salon_id")
		}
		if evt.MaxStaff <= 0 {
			return fmt.Errorf("billing.subscription.activated.v1 has non-positive max_staff for salon %s", evt.SalonID)
		}
		if err := repo.UpsertSalonEntitlements(ctx, storage.SalonEntitlements{
			SalonID:            evt.SalonID,
			Tier:               evt.Tier,
			MaxStaff:           evt.MaxStaff,
			MaxMonthlyBookings: evt.MaxMonthlyBookings,
		}); err != nil {
			return fmt.Errorf("upsert entitlements: %w", err)
		}
		logger.Info("entitlements updated", "salon_id", evt.SalonID, "tier", evt.Tier, "max_staff", evt.MaxStaff)
		return nil
	}
}
