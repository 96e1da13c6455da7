package jobs

import (
	"context"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/logger"
	"scootrapid-backend/internal/observability"
)

// MarkOverdueRentals is the cooperative overdue poll: it walks active
// rentals that have run past the configured maximum and asks the state
// machine to flag each one. The rentals stay open until an explicit
// end or cancel.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		now := time.Now()
		cutoff := now.Add(-time.Duration(jr.config.Rental.MaxRentalTimeHours) * time.Hour)

		candidates, err := jr.store.RentalRepository.ListActiveStartedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("failed to list overdue candidates", "error", err)
			return
		}

		count := 0
		for _, rt := range candidates {
			flagged, err := jr.services.Rental.CheckOverdue(ctx, rt.ID, now)
			if err != nil {
				logger.Error("failed to check overdue rental", "rental_id", rt.ID, "error", err)
				continue
			}
			if flagged {
				observability.RentalsOverdue.Inc()
				count++
			}
		}

		logger.Info("marked rentals as overdue", "count", count, "candidates", len(candidates))
	})
}

// SendOverdueReminders emails every user holding an overdue rental.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.RentalRepository.ListByStatus(ctx, domain.RentalStatusOverdue, 500)
		if err != nil {
			logger.Error("failed to list overdue rentals", "error", err)
			return
		}

		sent := 0
		for _, rt := range overdue {
			user, err := jr.store.UserRepository.GetByID(ctx, rt.UserID)
			if err != nil {
				logger.Error("failed to load user for reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			if err := jr.services.Email.SendOverdueReminder(ctx, user.Email, user.FullName(), rt.RentalCode, rt.StartTime); err != nil {
				logger.Error("failed to send overdue reminder", "rental_id", rt.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("sent overdue reminders", "count", sent)
	})
}
