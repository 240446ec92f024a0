package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/config"
	"github.com/ecowave/ecowave-hub/internal/database"
	"github.com/ecowave/ecowave-hub/internal/handler"
	"github.com/ecowave/ecowave-hub/internal/logger"
	"github.com/ecowave/ecowave-hub/internal/queue"
	"github.com/ecowave/ecowave-hub/internal/router"
	"github.com/ecowave/ecowave-hub/internal/storage"
	"github.com/ecowave/ecowave-hub/internal/store/factory"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	logger.Setup()
	cfg := config.Load()

	deps := factory.Deps{Cfg: cfg}
	if cfg.DataBackend == config.BackendMySQL {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("database connect: %v", err)
		}
		defer db.Close()
		deps.DB = db
	}
	svc := factory.Resolve(deps)

	rdb := config.NewRedisClient()
	if rdb == nil {
		slog.Warn("redis unavailable, cache, rate limiting and audit fallback degrade", "type", "sys")
	}

	var fallback audit.FallbackStore
	if rdb != nil {
		fallback = audit.NewRedisFallback(rdb, cfg.AuditFallbackKey)
	} else {
		fallback = audit.NewMemoryFallback()
	}
	auditLog := audit.New(svc, fallback)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The availability probe must not delay startup.
	go func() {
		if auditLog.TestConnection(ctx) {
			slog.Info("audit trail store reachable", "type", "audit")
		} else {
			slog.Warn("audit trail store unreachable, entries buffer locally", "type", "audit")
		}
	}()
	auditLog.StartReprobe(ctx, cfg.AuditReprobe)

	var spaces *storage.SpacesService
	if s, err := storage.NewSpacesService(cfg); err != nil {
		slog.Warn("image uploads disabled", "type", "sys", "reason", err)
	} else {
		spaces = s
	}

	go queue.StartReviewConsumer(ctx, svc)

	authHandler := handler.NewAuthHandler(svc, auditLog, cfg.JWTSecret, cfg.AccessTTLMin)
	adminHandler := handler.NewAdminHandler(svc, auditLog, spaces)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, svc, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	slog.Info("listening", "type", "sys", "addr", addr, "env", cfg.Env, "backend", cfg.DataBackend)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
