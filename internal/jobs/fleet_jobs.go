package jobs

import (
	"context"
	"time"

	"scootrapid-backend/internal/logger"
)

// FlagLowBatteryScooters alerts providers about scooters that are due
// for service. It only notifies; flipping a scooter to maintenance
// stays a provider decision.
func (jr *JobRunner) FlagLowBatteryScooters() {
	jr.runWithRecovery("FlagLowBatteryScooters", func() {
		ctx := context.Background()

		scooters, err := jr.store.ScooterRepository.ListNeedingMaintenance(ctx, time.Now(), 500)
		if err != nil {
			logger.Error("failed to list scooters needing maintenance", "error", err)
			return
		}

		alerted := 0
		for _, sc := range scooters {
			provider, err := jr.store.UserRepository.GetByID(ctx, sc.ProviderID)
			if err != nil {
				logger.Error("failed to load provider for alert", "scooter_id", sc.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendMaintenanceAlert(ctx, provider.Email, provider.FullName(), sc.Identifier, sc.BatteryLevel); err != nil {
				logger.Error("failed to send maintenance alert", "scooter_id", sc.ID, "error", err)
				continue
			}
			alerted++
		}

		logger.Info("flagged scooters for maintenance", "count", alerted, "candidates", len(scooters))
	})
}
