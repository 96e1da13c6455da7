package jobs

import (
	"scootrapid-backend/internal/config"
	"scootrapid-backend/internal/logger"
	"scootrapid-backend/internal/repository/postgres"
	"scootrapid-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email  service.EmailService
	Rental service.RentalService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()
	logger.Debug("job starting", "job", jobName)
	jobFunc()
	logger.Debug("job finished", "job", jobName)
}
