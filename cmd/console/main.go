package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/madahotspot/voucher-console/internal/api"
	"github.com/madahotspot/voucher-console/internal/core/service"
	"github.com/madahotspot/voucher-console/internal/core/store"
	"github.com/madahotspot/voucher-console/internal/infrastructure/config"
	mongodb "github.com/madahotspot/voucher-console/internal/infrastructure/db/mongo"
	redisdb "github.com/madahotspot/voucher-console/internal/infrastructure/db/redis"
	"github.com/madahotspot/voucher-console/internal/infrastructure/queue"
	"github.com/madahotspot/voucher-console/internal/infrastructure/upstream"
	"github.com/madahotspot/voucher-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		lg := logger.Init(logger.Options{})
		lg.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Session store (Redis) ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Audit trail (MongoDB) ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	audit := queue.NewAuditDispatcher(0, mongodb.NewAuditRepository(db), log)
	audit.Start(ctx)

	// --- Upstream voucher API ---
	client := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	registry := store.NewRegistry(store.Gateways{
		Plans:    upstream.NewPlanAPI(client),
		POS:      upstream.NewPOSAPI(client),
		Cashiers: upstream.NewCashierAPI(client),
		Sales:    upstream.NewSalesAPI(client),
		Tickets:  upstream.NewTicketAPI(client),
	}, 0, log)
	registry.Start(ctx)

	sessions := service.NewSessionService(
		upstream.NewAuthAPI(client),
		redisdb.NewSessionRepository(rdb, cfg.SessionTTL),
		audit,
		cfg.SessionSecret,
		cfg.SessionTTL,
		log,
	)

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Registry: registry,
		Audit:    audit,
		Redis:    rdb,
		Mongo:    db,
		Log:      log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("console listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
