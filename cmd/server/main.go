package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "scootrapid-backend/internal/api/http"
	"scootrapid-backend/internal/config"
	"scootrapid-backend/internal/jobs"
	"scootrapid-backend/internal/logger"
	"scootrapid-backend/internal/repository/postgres"
	"scootrapid-backend/internal/scheduler"
	"scootrapid-backend/internal/security"
	"scootrapid-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ScootRapid Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	scooterSvc := service.NewScooterService(store.UnitOfWork, store.ScooterRepository, store.RentalRepository, store.UserRepository)
	rentalSvc := service.NewRentalService(
		store.UnitOfWork,
		store.RentalRepository,
		store.ScooterRepository,
		store.UserRepository,
		store.PaymentRepository,
		scooterSvc,
		emailSvc,
		service.Pricing{
			BaseFee:       cfg.Pricing.StartFee,
			PerMinuteRate: cfg.Pricing.PricePerMinute,
			MaxRentalTime: time.Duration(cfg.Rental.MaxRentalTimeHours) * time.Hour,
		},
	)
	fleetSvc := service.NewFleetService(store.ScooterRepository)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.UserRepository)

	// Run the cron jobs in-process alongside the API. The standalone
	// cronjob binary exists for deployments that split them.
	jobRunner := jobs.NewJobRunner(store, &jobs.Services{Email: emailSvc, Rental: rentalSvc}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Initialize HTTP server
	server := httpapi.NewServer(authSvc, scooterSvc, rentalSvc, fleetSvc, paymentSvc, tokenManager, httpapi.SearchDefaults{
		RadiusKm: cfg.Search.DefaultRadiusKm,
		Limit:    cfg.Search.DefaultLimit,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), server); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
