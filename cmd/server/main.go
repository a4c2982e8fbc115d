package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/interviewsim/interview-api/internal/api"
	"github.com/interviewsim/interview-api/internal/infrastructure/config"
	"github.com/interviewsim/interview-api/internal/infrastructure/db/mongo"
	"github.com/interviewsim/interview-api/internal/infrastructure/db/redis"
	"github.com/interviewsim/interview-api/internal/infrastructure/storage/s3"
	"github.com/interviewsim/interview-api/pkg/logger"
)

// @title           Interview Sim API
// @version         1.0
// @description     User and account backend for the interview simulation platform.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init("info", "development")
		fallback.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(cfg.LogLevel, cfg.Env)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting interview-api")

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensuring mongodb indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	storage, err := s3.New(ctx, cfg.S3.Region, cfg.S3.Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("initialising s3 storage")
	}

	e := api.NewRouter(db, rdb, storage, api.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		LoginLimit:     cfg.RateLimit.LoginLimit,
		LoginWindowSec: cfg.RateLimit.LoginWindowSeconds,
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
