package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/reconcile"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/usecase"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/service"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/infrastructure/config"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/infrastructure/feed"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/infrastructure/messaging"
	infraPG "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/infrastructure/postgres"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/infrastructure/scheduler"
	grpcPresentation "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/presentation/grpc"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/presentation/rest"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/auth"
	kafkapkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/kafka"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/observability"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()
	cfg.Validate()

	// Initialize logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	logger.Info("starting duesd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(ctx)
	}

	// Initialize metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Initialize database.
	pgConfig := pgpkg.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pgpkg.NewPool(ctx, pgConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations.
	if err := pgpkg.RunMigrations(pgConfig.DSN(), "file://internal/infrastructure/postgres/migrations"); err != nil {
		logger.Warn("migration warning", "error", err)
	}

	// Initialize Kafka producer.
	producer := kafkapkg.NewProducer(kafkapkg.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer producer.Close()

	// Auth.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Repositories.
	ledger := infraPG.NewLedgerRepo(pool)
	sessions := infraPG.NewSessionRepo(pool)
	profiles := infraPG.NewProfileRepo(pool)
	billingConfig := infraPG.NewConfigRepo(pool)
	outbox := infraPG.NewOutboxRepo(pool)

	// Events go through the outbox; the relay delivers them.
	publisher := messaging.NewOutboxPublisher(outbox)
	relay := messaging.NewOutboxRelay(outbox, producer, cfg.Kafka.EventTopic, time.Second, 200, logger)

	// Use cases.
	clock := usecase.SystemClock{}
	aggregator := service.NewDuesAggregator()
	checkBillUC := usecase.NewCheckBillUseCase(ledger, billingConfig, aggregator, logger)
	lifetimeUC := usecase.NewLifetimeSummaryUseCase(ledger, billingConfig, aggregator, logger)
	classSummaryUC := usecase.NewClassSummaryUseCase(ledger, billingConfig, aggregator, logger)
	createUC := usecase.NewCreateSessionUseCase(ledger, sessions, profiles, publisher, clock, logger)
	confirmUC := usecase.NewConfirmSessionUseCase(ledger, sessions, profiles, publisher, clock, logger)
	cancelUC := usecase.NewCancelSessionUseCase(ledger, sessions, profiles, publisher, clock, logger)
	getUC := usecase.NewGetSessionUseCase(sessions, clock)
	expireUC := usecase.NewExpireSessionUseCase(ledger, sessions, profiles, publisher, clock, logger)
	resumeUC := usecase.NewResumeSessionUseCase(sessions, expireUC, clock)
	getRangeUC := usecase.NewGetBillingRangeUseCase(billingConfig)
	saveRangeUC := usecase.NewSaveBillingRangeUseCase(billingConfig, logger)

	// Lease reaper.
	reaper := scheduler.NewReaper(sessions, expireUC, cfg.Reaper.Interval, cfg.Reaper.BatchSize, logger)

	// Change feed reconciliation.
	reconciler := reconcile.NewReconciler(sessions, ledger, confirmUC, cancelUC, logger)
	feedConsumer := feed.NewConsumer(reconciler, logger)
	kafkaConsumer := kafkapkg.NewConsumer(kafkapkg.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
	}, cfg.Kafka.FeedTopic, feedConsumer.Handle, logger)
	defer kafkaConsumer.Close()

	// gRPC server.
	handler := grpcPresentation.NewDuesHandler(
		checkBillUC, lifetimeUC, classSummaryUC,
		createUC, confirmUC, cancelUC, getUC, resumeUC,
		getRangeUC, saveRangeUC,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, cfg.GRPCPort, jwtService)

	// HTTP server (health checks + metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start everything.
	errCh := make(chan error, 4)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	go func() {
		if err := reaper.Run(ctx); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	go func() {
		if err := relay.Run(ctx); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	go func() {
		if err := kafkaConsumer.Start(ctx); err != nil && ctx.Err() == nil {
			errCh <- err
		}
	}()

	// Wait for shutdown.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	grpcServer.Stop()
	logger.Info("duesd stopped")
}
