package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/credexa/session-gateway/internal/api"
	"github.com/credexa/session-gateway/internal/api/handler"
	"github.com/credexa/session-gateway/internal/api/metrics"
	"github.com/credexa/session-gateway/internal/core/domain"
	"github.com/credexa/session-gateway/internal/core/service"
	"github.com/credexa/session-gateway/internal/infrastructure/backend"
	mongodb "github.com/credexa/session-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/credexa/session-gateway/internal/infrastructure/db/redis"
	"github.com/credexa/session-gateway/internal/infrastructure/queue"
	"github.com/credexa/session-gateway/internal/pkg/config"
	"github.com/credexa/session-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Persistence ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// --- Audit trail: async writes sharded per user ---
	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewDispatcher(0, auditRepo, logger.Component("audit_queue"))
	audit.Start(ctx)

	// --- Session and auth lifecycle ---
	keystore := redisdb.NewSessionKeystore(rdb, "credexa")
	store := service.NewSessionStore(keystore, logger.Component("session_store"))

	authClient := backend.NewAuthClient(cfg.Services.LoginURL)
	controller := service.NewAuthController(store, authClient, audit, logger.Component("auth"))
	controller.OnRestore(metrics.SessionRestoresTotal.Inc)
	controller.OnLogout(func(reason domain.LogoutReason) {
		metrics.LogoutsTotal.WithLabelValues(string(reason)).Inc()
	})

	// All data-service calls share one client that attaches the session token
	// and reports 401s to the controller.
	httpClient := backend.NewHTTPClient(store, func() {
		controller.HandleAuthRejection(context.Background())
	})

	controller.Initialize(ctx)

	// --- Idle timeout ---
	hub := service.NewActivityHub()
	monitor := service.NewIdleMonitor(cfg.IdleTimeout, hub, service.SystemClock{}, controller, store, logger.Component("idle_monitor"))
	monitor.Start()
	defer monitor.Stop()

	// --- HTTP surface ---
	e := api.NewRouter(api.Dependencies{
		Log:      log,
		Store:    store,
		Auth:     controller,
		Activity: hub,

		Products:   backend.NewProductClient(cfg.Services.ProductURL, httpClient),
		Calculator: backend.NewCalculatorClient(cfg.Services.CalculatorURL, httpClient),
		Customers:  backend.NewCustomerClient(cfg.Services.CustomerURL, httpClient),
		FDAccounts: backend.NewFDAccountClient(cfg.Services.FDAccountURL, httpClient),
		Audit:      auditRepo,
		Settings: handler.SettingsView{
			Environment: cfg.Env,
			IdleTimeout: cfg.IdleTimeout,
			Services: map[string]string{
				"login":      cfg.Services.LoginURL,
				"customer":   cfg.Services.CustomerURL,
				"product":    cfg.Services.ProductURL,
				"fd_account": cfg.Services.FDAccountURL,
				"calculator": cfg.Services.CalculatorURL,
			},
		},

		Redis: rdb,
		Mongo: db,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("session gateway started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
