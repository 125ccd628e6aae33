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

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/usecase"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/infrastructure/adapter"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/infrastructure/config"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/infrastructure/kafka"
	pgRepo "github.com/Skenwise/loan-hub-zambia-sub003/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/Skenwise/loan-hub-zambia-sub003/internal/presentation/grpc"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/presentation/rest"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/auth"
	pkgkafka "github.com/Skenwise/loan-hub-zambia-sub003/pkg/kafka"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/observability"
	pkgpostgres "github.com/Skenwise/loan-hub-zambia-sub003/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  "info",
		Format: "json",
	})
	slog.SetDefault(logger)

	logger.Info("starting loan-risk-engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics exporter; the handler is mounted on the HTTP server below.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Run database migrations.
	migDSN := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}.DSN()
	if migErr := pkgpostgres.RunMigrations(migDSN, "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Wire infrastructure adapters.
	loanRepo := pgRepo.NewLoanRepo(pool)
	repaymentRepo := pgRepo.NewRepaymentRepo(pool)
	eclRepo := pgRepo.NewECLRepo(pool)
	provisionRepo := pgRepo.NewProvisionRepo(pool)
	caseRepo := pgRepo.NewCollectionCaseRepo(pool)
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
	})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)
	profiles := adapter.NewStubCustomerProfileReader()

	// Domain services from the policy tables.
	aging := service.NewAgingCalculator(cfg.Risk.AgingThresholds)
	stager := service.NewStageClassifier()
	estimator := service.NewECLEstimator(cfg.Risk.LossRates())
	provisioner := service.NewProvisioningCalculator(cfg.Risk.ProvisionRates(), cfg.Risk.DivergenceThreshold)
	scorer := service.NewRiskScorer()
	aggregator := service.NewPortfolioAggregator(aging, stager)
	policy := service.NewApprovalPolicy()

	// Wire use cases.
	registerUC := usecase.NewRegisterLoanUseCase(loanRepo, publisher, profiles, policy)
	disburseUC := usecase.NewDisburseLoanUseCase(loanRepo, publisher)
	repaymentUC := usecase.NewApplyRepaymentUseCase(loanRepo, repaymentRepo, publisher)
	settleUC := usecase.NewSettleEarlyUseCase(loanRepo, repaymentRepo, publisher)
	assessUC := usecase.NewAssessLoanUseCase(
		loanRepo, eclRepo, provisionRepo, caseRepo, publisher, profiles,
		aging, stager, estimator, provisioner, scorer,
	)
	portfolioUC := usecase.NewAssessPortfolioUseCase(loanRepo, eclRepo, provisionRepo, aggregator)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, repaymentRepo)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{
		Issuer: "lhz-gateway",
	}
	switch {
	case os.Getenv("JWT_PUBLIC_KEY") != "":
		jwtCfg.PublicKeyPEM = os.Getenv("JWT_PUBLIC_KEY")
	case os.Getenv("JWT_PUBLIC_KEY_FILE") != "":
		keyData, loadErr := auth.LoadKeyFromFile(os.Getenv("JWT_PUBLIC_KEY_FILE"))
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			jwtSecret = "test-e2e-secret" // Match gateway default for E2E tests
		}
		jwtCfg.Secret = jwtSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	handler := grpcPresentation.NewRiskHandler(
		registerUC, disburseUC, repaymentUC, settleUC, assessUC, portfolioUC, getLoanUC,
		logger,
	)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc)

	// HTTP server (health checks + metrics).
	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(logger, pool)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan-risk-engine stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
