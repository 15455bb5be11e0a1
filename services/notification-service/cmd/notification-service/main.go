package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tomide-adeyemi/salonbook/libs/config"
	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/libs/httpx"
	"github.com/tomide-adeyemi/salonbook/libs/kafkax"
	otelx "github.com/tomide-adeyemi/salonbook/libs/otel"
	"github.com/tomide-adeyemi/salonbook/libs/runtime"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/consumer"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/dispatch"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/email"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/handlers"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/inbox"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/reminders"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/sms"
	"github.com/tomide-adeyemi/salonbook/services/notification-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	reminderRepo := reminders.NewRepository()

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	backoffSeconds, err := strconv.Atoi(config.String("REMINDER_BACKOFF_SECONDS", "60"))
	if err != nil || backoffSeconds <= 0 {
		backoffSeconds = 60
	}
	reminderWorker := reminders.NewWorker(pool, reminderRepo, outboxRepo, logger, reminders.WorkerConfig{
		Interval:  2 * time.Second,
		BatchSize: 50,
		Backoff:   time.Duration(backoffSeconds) * time.Second,
	})
	go reminderWorker.Run(ctx)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@salonbook.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)
	smsSender := sms.FromConfig(
		config.String("SMS_PROVIDER", "noop"),
		config.String("SMS_WEBHOOK_URL", ""),
		config.String("SMS_WEBHOOK_TOKEN", ""),
	)

	leadHours, err := strconv.Atoi(config.String("REMINDER_LEAD_HOURS", "24"))
	if err != nil || leadHours <= 0 {
		leadHours = 24
	}
	dispatcher := dispatch.New(pool, notificationsRepo, outboxRepo, reminderRepo, emailSender, smsSender, logger, dispatch.Config{
		ReminderLead: time.Duration(leadHours) * time.Hour,
	})

	brokers := config.String("KAFKA_BROKERS", "")
	groupID := config.String("KAFKA_GROUP_ID", "notification-service")
	topics := []struct {
		topic   string
		handler consumer.Handler
	}{
		{config.String("KAFKA_USER_TOPIC", "auth.user.created.v1"), dispatcher.ContactHandler()},
		{config.String("KAFKA_CREATED_TOPIC", "appointment.created.v1"), dispatcher.CreatedHandler()},
		{config.String("KAFKA_CANCELLED_TOPIC", "appointment.cancelled.v1"), dispatcher.CancelledHandler()},
		{config.String("KAFKA_RESCHEDULE_TOPIC", "appointment.reschedule_requested.v1"), dispatcher.RescheduleHandler()},
		{config.String("KAFKA_REMINDER_TOPIC", "notification.reminder.due.v1"), dispatcher.ReminderDueHandler()},
	}
	for _, t := range topics {
		c := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   t.topic,
		}, t.handler)
		go c.Run(ctx)
	}

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	prefsHandler := handlers.NewPrefsHandler(notificationsRepo, leadHours, logger)
	mux.HandleFunc("/api/v1/notifications/preferences", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			prefsHandler.Get(w, r)
		case http.MethodPut:
			prefsHandler.Put(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
