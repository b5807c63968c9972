package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloghub/blog-api/internal/api"
	"github.com/bloghub/blog-api/internal/infrastructure/config"
	mongodb "github.com/bloghub/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bloghub/blog-api/internal/infrastructure/db/redis"
	"github.com/bloghub/blog-api/internal/infrastructure/storage"
	"github.com/bloghub/blog-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewPostRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("post index creation failed")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		c, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer c.Close()
		rdb = c
	}

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload directory unavailable")
	}

	janitor := storage.NewJanitor(store, log)
	janitor.Start(ctx)

	e := api.NewRouter(api.Options{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Store:      store,
		Janitor:    janitor,
		CORSOrigin: cfg.CORSOrigin,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
