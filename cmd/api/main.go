package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aviation-erp-api/internal/app"
	"github.com/noah-isme/aviation-erp-api/internal/config"
	"github.com/noah-isme/aviation-erp-api/internal/database"
	"github.com/noah-isme/aviation-erp-api/internal/middleware"
	"github.com/noah-isme/aviation-erp-api/internal/router"
	"github.com/noah-isme/aviation-erp-api/internal/utils"
	cloud "github.com/noah-isme/aviation-erp-api/pkg/cloudinary"
	"github.com/noah-isme/aviation-erp-api/pkg/mailer"
	"github.com/noah-isme/aviation-erp-api/pkg/razorpay"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	providers := app.Providers{}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable; announcements are not cached")
		} else {
			defer redisClient.Close()
			providers.Cache = redisClient
			providers.LimiterStorage = database.NewRedisStorage(redisClient, "limiter:")
		}
	}

	cloudCfg := cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}
	if cloudCfg.Configured() {
		uploader, err := cloud.New(cloudCfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cloudinary client")
		}
		providers.Blobs = uploader
	} else {
		logger.Warn().Msg("cloudinary not configured; uploads are not stored")
	}

	if cfg.PaymentsEnabled() {
		gateway, err := razorpay.New(razorpay.Config{
			KeyID:     cfg.RazorpayKeyID,
			KeySecret: cfg.RazorpayKeySecret,
			BaseURL:   cfg.RazorpayBaseURL,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create razorpay client")
		}
		providers.Gateway = gateway
	}

	if cfg.ResendAPIKey != "" {
		sender, err := mailer.New(cfg.ResendAPIKey, cfg.EmailFrom, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create mailer")
		}
		providers.Mailer = sender
	}

	container := app.Build(cfg, db, providers, logger)

	server := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    25 << 20,
		ErrorHandler: utils.ErrorHandler(logger),
	})

	middleware.Register(server, middleware.Config{Logger: &logger, AccessLog: cfg.AppEnv == "development"})
	router.Register(server, cfg, container.Routes())

	go func() {
		if err := server.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(server, logger)
}

func waitForShutdown(server *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
