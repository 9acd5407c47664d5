package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/freshguard/freshd/internal/config"
	"github.com/freshguard/freshd/internal/handler"
	"github.com/freshguard/freshd/internal/health"
	"github.com/freshguard/freshd/internal/infra/notify"
	"github.com/freshguard/freshd/internal/infra/repository"
	"github.com/freshguard/freshd/internal/observability"
	"github.com/freshguard/freshd/internal/observability/logging"
	"github.com/freshguard/freshd/internal/observability/metrics"
	"github.com/freshguard/freshd/internal/service/reconcile"
	"github.com/freshguard/freshd/internal/service/schedule"
	"github.com/freshguard/freshd/internal/service/urgency"
	"github.com/freshguard/freshd/internal/store"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	logging.Setup(cfg.LogLevel, "freshd", Version)

	if err := cfg.Redis.Validate(); err != nil {
		slog.Error("redis configuration error", slog.String("error", err.Error()))
		return 1
	}

	obs, err := observability.Init(ctx, "freshd", Version)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing", slog.String("error", err.Error()))
		return 1
	}
	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics", slog.String("error", err.Error()))
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr))

	backend := initBackend(ctx, cfg)

	snapshotRepo := repository.NewSnapshotRepository(redisClient)
	language := schedule.ParseLanguage(cfg.Language)
	planner := schedule.NewPlanner(language, cfg.Timezone)
	classifier := urgency.NewClassifier(cfg.Timezone)
	reconciler := reconcile.NewReconciler(backend, scheduleMetrics)

	st := store.New(snapshotRepo, planner, reconciler, cfg.Timezone, cfg.ProUser)
	st.Load(ctx)

	spaceHandler := handler.NewSpaceHandler(st)
	itemHandler := handler.NewItemHandler(st, classifier, cfg.Timezone)
	thresholdHandler := handler.NewThresholdHandler(st)

	r := gin.New()
	r.Use(gin.Recovery())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/spaces", spaceHandler.HandleList)
		v1.POST("/spaces", spaceHandler.HandleCreate)
		v1.PATCH("/spaces/:spaceID", spaceHandler.HandleUpdate)
		v1.DELETE("/spaces/:spaceID", spaceHandler.HandleDelete)

		v1.GET("/spaces/:spaceID/items", itemHandler.HandleList)
		v1.POST("/spaces/:spaceID/items", itemHandler.HandleCreate)
		v1.PUT("/spaces/:spaceID/items/:itemID", itemHandler.HandleUpdate)
		v1.DELETE("/spaces/:spaceID/items/:itemID", itemHandler.HandleDelete)

		v1.GET("/thresholds", thresholdHandler.HandleList)
		v1.POST("/thresholds", thresholdHandler.HandleCreate)
		v1.PATCH("/thresholds/:thresholdID", thresholdHandler.HandleUpdate)
		v1.DELETE("/thresholds/:thresholdID", thresholdHandler.HandleDelete)

		v1.GET("/urgent", spaceHandler.HandleUrgentCount)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("language", string(language)),
			slog.String("timezone", cfg.Timezone.String()),
			slog.Bool("pro_user", cfg.ProUser),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// initBackend wires the notification gateway. Without a configured URL
// or without permission, reminders are disabled and everything else
// keeps working.
func initBackend(ctx context.Context, cfg *config.Config) notify.Backend {
	if cfg.NotifyGatewayURL == "" {
		slog.Warn("NOTIFY_GATEWAY_URL not set, reminder delivery disabled")
		return notify.NewNoopBackend()
	}

	gateway := notify.NewGatewayClient(cfg.NotifyGatewayURL)

	granted, err := gateway.RequestPermission(ctx)
	if err != nil {
		slog.Warn("notification permission request failed, reminder delivery disabled",
			slog.String("error", err.Error()),
		)
		return notify.NewNoopBackend()
	}
	if !granted {
		slog.Warn("notification permission not granted, reminder delivery disabled")
		return notify.NewNoopBackend()
	}

	if err := gateway.ClearBadge(ctx); err != nil {
		slog.Warn("failed to clear badge count", slog.String("error", err.Error()))
	}

	slog.Info("notification gateway initialized",
		slog.String("url", cfg.NotifyGatewayURL),
	)
	return gateway
}
