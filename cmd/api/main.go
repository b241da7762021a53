package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/schooldesk/examvault-api/internal/config"
	"github.com/schooldesk/examvault-api/internal/database"
	"github.com/schooldesk/examvault-api/internal/handler"
	"github.com/schooldesk/examvault-api/internal/middleware"
	"github.com/schooldesk/examvault-api/internal/models"
	"github.com/schooldesk/examvault-api/internal/repository"
	"github.com/schooldesk/examvault-api/internal/router"
	"github.com/schooldesk/examvault-api/internal/service"
	"github.com/schooldesk/examvault-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.AuditLog{},
		&models.SystemConfig{},
		&models.TeacherProfile{},
		&models.Permission{},
		&models.RolePermission{},
		&models.ExamFileVersion{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, stats caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, audit event fan-out disabled")
	}

	storageClient, err := storage.New(storage.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Bucket:    cfg.StorageBucket,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create storage client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	auditRepo := repository.NewAuditLogRepository(db)
	configRepo := repository.NewSystemConfigRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	versionRepo := repository.NewExamFileVersionRepository(db)

	auditService := service.NewAuditService(auditRepo, redisClient, cfg.StatsCacheTTL, natsConn, logger)
	permissionService := service.NewPermissionService(permissionRepo, logger)
	configService := service.NewConfigService(configRepo, validate, logger)
	storageService := service.NewStorageService(storageClient, versionRepo, auditService, cfg.SignedURLTTL, logger)

	auditHandler := handler.NewAuditHandler(auditService, validate, logger)
	permissionHandler := handler.NewPermissionHandler(permissionService, validate, logger)
	configHandler := handler.NewConfigHandler(configService, logger)
	storageHandler := handler.NewStorageHandler(storageService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:      &logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	var identity fiber.Handler
	if cfg.JWTSecret != "" {
		identity = middleware.Identity(cfg.JWTSecret)
	}

	router.Register(app, cfg, router.Dependencies{
		AuditHandler:      auditHandler,
		PermissionHandler: permissionHandler,
		ConfigHandler:     configHandler,
		StorageHandler:    storageHandler,
		IdentityResolver:  identity,
		AuditWriteLimiter: middleware.RateLimit("audit-log", 60, time.Minute),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
