package main

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tomide-adeyemi/salonbook/libs/config"
	"github.com/tomide-adeyemi/salonbook/libs/db"
	"github.com/tomide-adeyemi/salonbook/libs/httpx"
	"github.com/tomide-adeyemi/salonbook/libs/kafkax"
	otelx "github.com/tomide-adeyemi/salonbook/libs/otel"
	"github.com/tomide-adeyemi/salonbook/libs/runtime"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/appointments"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/consumer"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/handlers"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/inbox"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/outbox"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/salonref"
	"github.com/tomide-adeyemi/salonbook/services/appointment-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "appointment-service")
	port, err := config.Port("PORT", "8083")
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

	store := storage.NewStore(pool)
	outboxRepo := outbox.NewRepository(pool)
	svc := appointments.NewService(store, logger)

	resolver, err := salonref.NewResolver(config.String("SALON_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("salon resolver init failed; slots fall back to query params", "err", err)
		resolver = nil
	}

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	salonConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: config.String("KAFKA_BROKERS", ""),
		GroupID: config.String("KAFKA_GROUP_ID", "appointment-service"),
		Topic:   config.String("KAFKA_SALON_TOPIC", "salon.updated.v1"),
	}, consumer.SalonProjectionHandler(store.Salons(), logger))
	go salonConsumer.Run(ctx)

	apptHandler := handlers.NewAppointmentHandler(svc, logger)
	bookingHandler := handlers.NewBookingHandler(store.Appointments(), store.Salons(), outboxRepo, resolver, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/public/slots", bookingHandler.Slots)
	mux.HandleFunc("/api/v1/appointments/book", bookingHandler.Create)
	mux.HandleFunc("/api/v1/appointments", apptHandler.List)
	mux.HandleFunc("/api/v1/appointments/cancel", apptHandler.Cancel)
	mux.HandleFunc("/api/v1/appointments/reschedule", apptHandler.Reschedule)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "appointment")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
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
