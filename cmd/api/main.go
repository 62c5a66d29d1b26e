package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hinge-bot/internal/config"
	"hinge-bot/internal/db"
	"hinge-bot/internal/hinge"
	apihttp "hinge-bot/internal/http"
	"hinge-bot/internal/service"
	"hinge-bot/internal/store"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if creds, err := service.InspectToken(cfg.BearerToken); err != nil {
		logger.Warn("bearer token inspection failed", zap.Error(err))
	} else if creds.Expired {
		logger.Warn("bearer token already expired", zap.Time("expires_at", creds.ExpiresAt))
	}

	client := hinge.NewClient(cfg.HingeBaseURL, cfg.MediaBaseURL, hinge.Credentials{
		AuthToken: cfg.BearerToken,
		SessionID: cfg.SessionID,
		UserID:    cfg.UserID,
		DeviceID:  cfg.DeviceID,
		InstallID: cfg.InstallID,
	}, cfg.AppVersion, logger)

	var profileStore store.ProfileStore = store.NewJSONFileStore(cfg.StorePath)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		profileStore = store.NewPgProfileStore(pool)
		logger.Info("using postgres profile store")
	} else {
		logger.Info("using json file profile store", zap.String("path", cfg.StorePath))
	}

	quota := service.NewMemoryQuotaCache(5 * time.Minute)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			quota = service.NewRedisQuotaCache(redisClient, 5*time.Minute)
		}
		cancel()
	}

	fetcher := hinge.NewFeedFetcher(client, cfg.FeedActiveToday, cfg.FeedNewHere, logger)
	acquisitionSvc := service.NewAcquisitionService(fetcher, profileStore, logger)
	ratingSvc := service.NewRatingService(client, quota, logger)

	session := apihttp.NewSessionState()
	feedHandler := apihttp.NewFeedHandler(logger, fetcher, acquisitionSvc, session)
	ratingHandler := apihttp.NewRatingHandler(logger, ratingSvc, session)
	profileHandler := apihttp.NewProfileHandler(logger, client, profileStore)
	systemHandler := apihttp.NewSystemHandler(logger, client, cfg.BearerToken)
	router := apihttp.NewRouter(logger, feedHandler, ratingHandler, profileHandler, systemHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
