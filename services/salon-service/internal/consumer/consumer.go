package consumer

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tomide-adeyemi/salonbook/libs/kafkax"
	"github.com/tomide-adeyemi/salonbook/services/salon-service/internal/inbox"
)

type Handler func(ctx context.Context, msg kafka.Message) error

// dedupeStore is the slice of the inbox repository the consumer needs.
type dedupeStore interface {
	Record(ctx context.Context, eventID string, eventType string) (bool, error)
	Remove(ctx context.Context, eventID string) error
}

// Consumer reads one topic, deduplicates through the inbox table, and hands
// first-seen events to the handler. The offset is committed only after the
// handler succeeds; a failing event is retried in place with backoff and the
// partition never advances past it. Handlers drop malformed events
// themselves (return nil) and return errors only for transient failures.
type Consumer struct {
	reader  *kafka.Reader
	logger  *slog.Logger
	inbox   dedupeStore
	handler Handler
}

type Config struct {
	Brokers string
	GroupID string
	Topic   string
}

func New(logger *slog.Logger, inboxRepo *inbox.Repository, cfg Config, handler Handler) *Consumer {
	brokers := kafkax.SplitBrokers(cfg.Brokers)
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:  reader,
		logger:  logger,
		inbox:   inboxRepo,
		handler: handler,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("kafka read error", "err", err)
			time.Sleep(1 * time.Second)
			continue
		}

		// Retry in place rather than fetching past the failure: committing
		// any later offset would implicitly commit this one too.
		for !c.process(ctx, msg) {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(1 * time.Second)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			// The inbox row survives, so the redelivery after a failed
			// commit is absorbed as a duplicate.
			c.logger.Error("kafka commit failed", "err", err)
		}
	}
}

// process returns true when the offset may be committed: the event was
// handled, or it was a duplicate. A transient failure returns false with
// the inbox row cleared, leaving the event eligible for redelivery.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	ctxMsg := kafkax.ExtractTraceContext(ctx, msg)
	ctxSpan, span := otel.Tracer("kafka").Start(ctxMsg, "kafka.consume",
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
		),
	)
	defer span.End()

	meta := kafkax.ExtractEventMeta(msg)

	ok, err := c.inbox.Record(ctxSpan, meta.EventID, meta.EventType)
	if err != nil {
		c.logger.Error("inbox record failed", "err", err)
		span.RecordError(err)
		return false
	}
	if !ok {
		c.logger.Info("duplicate event ignored", "event_id", meta.EventID, "event_type", meta.EventType)
		return true
	}

	if err := c.handler(ctxSpan, msg); err != nil {
		c.logger.Error("handler error", "err", err, "event_id", meta.EventID)
		span.RecordError(err)
		if rmErr := c.inbox.Remove(ctxSpan, meta.EventID); rmErr != nil {
			// Worst case the retry is swallowed as a duplicate; the error
			// log above is the operator's signal to replay after fixing.
			c.logger.Error("inbox remove failed", "err", rmErr, "event_id", meta.EventID)
		}
		return false
	}
	return true
}
