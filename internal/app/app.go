package app

import (
	"context"
	"errors"
	"fmt"

	"rtw_backend/internal/auth"
	"rtw_backend/internal/config"
	"rtw_backend/internal/handlers"
	"rtw_backend/internal/logger"
	"rtw_backend/internal/middleware"
	"rtw_backend/internal/models"
	"rtw_backend/internal/pkg/email"
	"rtw_backend/internal/routes"
	"rtw_backend/internal/services"
	"rtw_backend/internal/storage"
	"rtw_backend/internal/validator"
	"rtw_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from gorm", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	router, container := SetupRouter(cfg, gormDB)

	if err := container.Billing.SeedDefaultPlans(context.Background(), gormDB); err != nil {
		logger.Fatal("failed to seed default plans", "error", err)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.NewBillingWorker(gormDB).Start(workerCtx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter assembles the gin engine with all middleware and routes. The
// service container is returned so callers (startup seeding, tests) can reach
// the services directly.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	store, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	emailSender, err := email.NewSender(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		UseTLS:       cfg.Email.UseTLS,
		TemplatePath: cfg.Email.TemplatesDir,
		SupportEmail: cfg.App.SupportEmail,
	})
	if err != nil {
		logger.Fatal("failed to initialize email sender", "error", err)
	}
	if _, disabled := emailSender.(*email.DisabledSender); disabled {
		logger.Warn("SMTP not configured, outgoing email is disabled")
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, "rtw_backend")

	container := services.NewServiceContainer(cfg, jwtService, emailSender, store)

	appHandlers := handlers.NewAppHandlers(container, validator.New(), cfg.Server.Env == "production")

	authMW := middleware.AuthMiddleware(jwtService, container.UserRepo, container.CandidateRepo, container.EmployerRepo)

	router := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(router, appHandlers, authMW)

	// Local uploads are served straight off disk. Other backends serve
	// their own URLs.
	if cfg.Storage.Type == "local" {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return router, container
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.App.BaseURL))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// Migrate applies the schema. Exposed for the test helpers.
func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on the primary keys need this extension.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Candidate{},
		&models.Employer{},
		&models.Notification{},
		&models.Media{},
		&models.Plan{},
		&models.Purchase{},
		&models.InterviewInvitation{},
		&models.ContactUnlock{},
	)
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// address is not present yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("admin user already exists", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email: adminEmail,
		Name:  "Administrator",
		Role:  models.UserRoleAdmin,
		AccountCredentials: models.AccountCredentials{
			PasswordHash:  hash,
			EmailVerified: true,
		},
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("first admin user created", "email", adminEmail)
	return nil
}
