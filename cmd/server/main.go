package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"blog_backend/internal/app/di"
	"blog_backend/internal/app/router"
	"blog_backend/internal/config"
	"blog_backend/internal/platform/db"
	infraredis "blog_backend/internal/platform/redis"
	"blog_backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// db
	conn, err := db.Open(cfg.Database.URL, cfg.Database.ConnectWait)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if cfg.Database.RunMigrations {
		if err := db.Migrate(conn, di.Models()...); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate")
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
		if errors.Is(err, infraredis.ErrNotConfigured) {
			log.Info().Msg("Redis not configured. Sessions stored in the database, post cache disabled.")
		} else {
			log.Warn().Err(err).Msg("Redis unavailable. Sessions stored in the database, post cache disabled.")
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis client")
			}
		}()
	}

	deps, err := di.NewRouterDeps(cfg, conn, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire application")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
