package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
	"scootrapid-backend/internal/logger"
	"scootrapid-backend/internal/observability"
	"scootrapid-backend/internal/repository"
)

// Pricing carries the engine-wide defaults snapshotted onto each new
// rental. Changing them never touches rentals already created.
type Pricing struct {
	BaseFee       float64
	PerMinuteRate float64
	MaxRentalTime time.Duration
}

type rentalService struct {
	uow         repository.UnitOfWork
	rentalRepo  repository.RentalRepository
	scooterRepo repository.ScooterRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	ledger      ScooterService
	emailSvc    EmailService
	pricing     Pricing
	now         func() time.Time
}

func NewRentalService(
	uow repository.UnitOfWork,
	rentalRepo repository.RentalRepository,
	scooterRepo repository.ScooterRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	ledger ScooterService,
	emailSvc EmailService,
	pricing Pricing,
) RentalService {
	return &rentalService{
		uow:         uow,
		rentalRepo:  rentalRepo,
		scooterRepo: scooterRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		ledger:      ledger,
		emailSvc:    emailSvc,
		pricing:     pricing,
		now:         time.Now,
	}
}

// Start validates both sides of the rental pair and flips them
// together: rental goes active, scooter goes in_use. The database's
// partial unique indexes on active rentals back up the precondition
// checks against concurrent starts.
func (s *rentalService) Start(ctx context.Context, userID, scooterID int32, startLat, startLon float64) (*domain.Rental, error) {
	if !geo.ValidCoordinates(startLat, startLon) {
		return nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, startLat, startLon)
	}

	var rental *domain.Rental
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		active, err := s.rentalRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%w: user already has an active rental (%s)", domain.ErrPreconditionFailed, active.RentalCode)
		}

		sc, err := s.scooterRepo.GetByID(ctx, scooterID)
		if err != nil {
			return err
		}
		if user.IsProvider() && sc.ProviderID == user.ID {
			return fmt.Errorf("%w: providers cannot rent their own scooters", domain.ErrPreconditionFailed)
		}
		if !sc.IsRentable() {
			return fmt.Errorf("%w: scooter %s is not available", domain.ErrPreconditionFailed, sc.Identifier)
		}

		now := s.now()
		rental = domain.NewRental(userID, scooterID, startLat, startLon, s.pricing.BaseFee, s.pricing.PerMinuteRate, now)
		rental.Status = domain.RentalStatusActive
		if err := s.rentalRepo.Create(ctx, rental); err != nil {
			return err
		}

		_, err = s.ledger.SetStatus(ctx, scooterID, domain.ScooterStatusInUse)
		return err
	})
	if err != nil {
		return nil, err
	}

	observability.RentalsStarted.Inc()
	logger.Info("rental started", "rental_code", rental.RentalCode, "user_id", userID, "scooter_id", scooterID)
	return rental, nil
}

// End finalizes cost and duration and returns the scooter to the
// available pool. A nil scooter reference (scooter deleted mid-rental
// history) means there is no scooter-side effect to apply.
func (s *rentalService) End(ctx context.Context, userID, rentalID int32, endLat, endLon *float64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		rt, err := s.loadOwned(ctx, userID, rentalID)
		if err != nil {
			return err
		}
		if !rt.CanFinish() {
			return fmt.Errorf("%w: rental %s is not active", domain.ErrPreconditionFailed, rt.RentalCode)
		}

		now := s.now()
		rt.EndTime = &now
		rt.Status = domain.RentalStatusCompleted
		minutes := rt.Duration(now)
		rt.DurationMinutes = &minutes
		rt.TotalCost = rt.Cost(now)

		if endLat != nil && endLon != nil {
			if !geo.ValidCoordinates(*endLat, *endLon) {
				return fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, *endLat, *endLon)
			}
			rt.EndLatitude = endLat
			rt.EndLongitude = endLon
			dist := geo.DistanceKm(rt.StartLatitude, rt.StartLongitude, *endLat, *endLon)
			rt.DistanceKm = &dist
		}

		if err := s.releaseScooter(ctx, rt, endLat, endLon); err != nil {
			return err
		}

		if err := s.chargeRental(ctx, rt, now); err != nil {
			return err
		}

		rental = rt
		return s.rentalRepo.Update(ctx, rt)
	})
	if err != nil {
		return nil, err
	}

	observability.RentalsCompleted.Inc()
	logger.Info("rental completed", "rental_code", rental.RentalCode, "duration_minutes", *rental.DurationMinutes, "total_cost", rental.TotalCost)
	s.sendReceipt(ctx, rental)
	return rental, nil
}

// Cancel finalizes like End but caps the charge at the flat base fee;
// a cancelled ride never costs more than starting it did.
func (s *rentalService) Cancel(ctx context.Context, userID, rentalID int32, reason string) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		rt, err := s.loadOwned(ctx, userID, rentalID)
		if err != nil {
			return err
		}
		if !rt.CanFinish() {
			return fmt.Errorf("%w: only active rentals can be cancelled", domain.ErrPreconditionFailed)
		}

		now := s.now()
		rt.EndTime = &now
		rt.Status = domain.RentalStatusCancelled
		minutes := rt.Duration(now)
		rt.DurationMinutes = &minutes
		if cost := rt.Cost(now); cost < rt.BaseFee {
			rt.TotalCost = cost
		} else {
			rt.TotalCost = rt.BaseFee
		}
		rt.CancelReason = reason

		if err := s.releaseScooter(ctx, rt, nil, nil); err != nil {
			return err
		}

		if err := s.chargeRental(ctx, rt, now); err != nil {
			return err
		}

		rental = rt
		return s.rentalRepo.Update(ctx, rt)
	})
	if err != nil {
		return nil, err
	}

	observability.RentalsCancelled.Inc()
	logger.Info("rental cancelled", "rental_code", rental.RentalCode, "reason", reason)
	return rental, nil
}

func (s *rentalService) AddRating(ctx context.Context, userID, rentalID int32, rating int32, feedback string) (*domain.Rental, error) {
	rt, err := s.loadOwned(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.Status != domain.RentalStatusCompleted {
		return nil, fmt.Errorf("%w: can only rate completed rentals", domain.ErrPreconditionFailed)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}
	rt.Rating = &rating
	rt.Feedback = feedback
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *rentalService) CheckOverdue(ctx context.Context, rentalID int32, now time.Time) (bool, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return false, err
	}
	if rt.Status != domain.RentalStatusActive {
		return false, nil
	}
	if now.Sub(rt.StartTime) <= s.pricing.MaxRentalTime {
		return false, nil
	}
	rt.Status = domain.RentalStatusOverdue
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return false, err
	}
	logger.Warn("rental overdue", "rental_code", rt.RentalCode, "started", rt.StartTime)
	return true, nil
}

func (s *rentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !user.IsAdmin() && !s.ownsRentalScooter(ctx, user, rt) {
			return nil, fmt.Errorf("%w: rental %d", domain.ErrNotFound, rentalID)
		}
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByUser(ctx, userID, status, page, pageSize)
}

// loadOwned fetches the rental and verifies the acting user holds it.
func (s *rentalService) loadOwned(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rt.UserID != userID {
		return nil, fmt.Errorf("%w: rental %s does not belong to user %d", domain.ErrPreconditionFailed, rt.RentalCode, userID)
	}
	return rt, nil
}

// chargeRental records the ledger entry for a finished rental. In-app
// charges settle synchronously; the gateway is an external collaborator
// so the entry lands already completed.
func (s *rentalService) chargeRental(ctx context.Context, rt *domain.Rental, now time.Time) error {
	payment := domain.NewPayment(rt.UserID, rt.ID, rt.TotalCost, "app")
	if err := payment.Complete("", now); err != nil {
		return err
	}
	return s.paymentRepo.Create(ctx, payment)
}

// releaseScooter returns the rental's scooter to the available pool
// and, when end coordinates were reported, moves it there. A missing
// or deleted scooter is not an error.
func (s *rentalService) releaseScooter(ctx context.Context, rt *domain.Rental, endLat, endLon *float64) error {
	if rt.ScooterID == nil {
		return nil
	}
	if _, err := s.scooterRepo.GetByID(ctx, *rt.ScooterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if _, err := s.ledger.SetStatus(ctx, *rt.ScooterID, domain.ScooterStatusAvailable); err != nil {
		return err
	}
	if endLat != nil && endLon != nil {
		if _, err := s.ledger.UpdateLocation(ctx, *rt.ScooterID, *endLat, *endLon, ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *rentalService) ownsRentalScooter(ctx context.Context, user *domain.User, rt *domain.Rental) bool {
	if !user.IsProvider() || rt.ScooterID == nil {
		return false
	}
	sc, err := s.scooterRepo.GetByID(ctx, *rt.ScooterID)
	return err == nil && sc.ProviderID == user.ID
}

func (s *rentalService) sendReceipt(ctx context.Context, rt *domain.Rental) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, rt.UserID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendRentalReceipt(ctx, user.Email, user.FullName(), rt.RentalCode, *rt.DurationMinutes, rt.TotalCost); err != nil {
		logger.Error("failed to send rental receipt", "rental_code", rt.RentalCode, "error", err)
	}
}
