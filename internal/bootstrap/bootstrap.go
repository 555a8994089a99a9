package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appMigrations "github.com/dgarciab/admision/internal/app/migrations"
	appRepos "github.com/dgarciab/admision/internal/app/repositories"
	appServices "github.com/dgarciab/admision/internal/app/services"
	"github.com/dgarciab/admision/internal/config"
	"github.com/dgarciab/admision/internal/db"
	"github.com/dgarciab/admision/internal/pkg/email"
	"github.com/dgarciab/admision/internal/pkg/logger"
	"github.com/dgarciab/admision/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services *appServices.Services
	Store    appRepos.IStore
	Notifier email.NotificationService
	Database *db.PostgresDB
	Config   *config.Config
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied first, if present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase establishes and verifies the database connection.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(database, lgr); err != nil {
		database.Pool.Close()
		return nil, err
	}

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding problems are reported but never block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// RunMigrations applies every pending SQL file from the migrations
// directory.
func RunMigrations(database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes the store, notifier and workflow services.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	store := appRepos.NewStore(database)

	notifier := email.NewNotificationService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	return &Dependencies{
		Services: appServices.NewServices(store, cfg, notifier, lgr),
		Store:    store,
		Notifier: notifier,
		Database: database,
		Config:   cfg,
		Logger:   lgr,
	}
}
