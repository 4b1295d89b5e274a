package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-projects-nosql/internal/application/deadline"
	"github.com/go-projects-nosql/internal/config"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/go-projects-nosql/internal/infrastructure/google"
	"github.com/go-projects-nosql/internal/infrastructure/hfspace"
	jwtinfra "github.com/go-projects-nosql/internal/infrastructure/jwt"
	openaiinfra "github.com/go-projects-nosql/internal/infrastructure/openai"
	s3infra "github.com/go-projects-nosql/internal/infrastructure/s3"
	"github.com/go-projects-nosql/internal/infrastructure/smtp"
	"github.com/go-projects-nosql/internal/infrastructure/sns"
	transporthttp "github.com/go-projects-nosql/internal/transport/http"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg)
	if envErr != nil {
		slog.Info("no .env file found, reading from environment")
	}

	if err := run(cfg); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.AppEnv == "production" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	projectRepo := dynamo.NewProjectRepo(dynamoClient, cfg.DynamoTables.Projects)
	taskRepo := dynamo.NewTaskRepo(dynamoClient, cfg.DynamoTables.Tasks)
	notificationRepo := dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	s3Client, err := s3infra.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	// SNS is optional.
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = sender
	} else {
		slog.Warn("sns sender not available", "err", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	schedOpts := []deadline.Option{
		deadline.WithInterval(cfg.DeadlineCheckInterval),
		deadline.WithMetrics(deadline.NewMetrics(reg)),
	}
	if d := deadline.NewOwnerDispatcher(userRepo, smtp.NewMailer(cfg), smsSender); d.Enabled() {
		schedOpts = append(schedOpts, deadline.WithDispatcher(d))
	}
	scheduler := deadline.NewScheduler(taskRepo, projectRepo, notificationRepo, schedOpts...)

	deps := &transporthttp.Deps{
		UserRepo:         userRepo,
		ProjectRepo:      projectRepo,
		TaskRepo:         taskRepo,
		DesignRepo:       dynamo.NewDesignRepo(dynamoClient, cfg.DynamoTables.Designs),
		NotificationRepo: notificationRepo,
		WireframeRepo:    dynamo.NewWireframeRepo(dynamoClient, cfg.DynamoTables.Wireframes),
		S3Store:          s3infra.NewStore(s3Client, cfg),
		JWTProvider:      jwtProvider,
		GoogleVerifier:   google.NewVerifier(cfg.GoogleClientID),
		WireframeModel:   hfspace.NewClient(cfg.WireframeURL, cfg.WireframeTimeout),
		LLM:              openaiinfra.NewClient(cfg),
		Scheduler:        scheduler,
		Metrics:          reg,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // wireframe generation waits on the model
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	if cfg.DeadlineCheckEnabled {
		if err := scheduler.Start(gctx); err != nil {
			return err
		}
	} else {
		slog.Info("deadline scheduler disabled")
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cfg.DeadlineCheckEnabled {
			select {
			case <-scheduler.Stop().Done():
			case <-shutdownCtx.Done():
				slog.Warn("deadline tick still running at shutdown")
			}
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	})

	return g.Wait()
}
