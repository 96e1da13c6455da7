package service

import (
	"context"
	"fmt"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
	"scootrapid-backend/internal/repository"
)

type scooterService struct {
	uow         repository.UnitOfWork
	scooterRepo repository.ScooterRepository
	rentalRepo  repository.RentalRepository
	userRepo    repository.UserRepository
}

func NewScooterService(
	uow repository.UnitOfWork,
	scooterRepo repository.ScooterRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
) ScooterService {
	return &scooterService{
		uow:         uow,
		scooterRepo: scooterRepo,
		rentalRepo:  rentalRepo,
		userRepo:    userRepo,
	}
}

func (s *scooterService) CreateScooter(ctx context.Context, actorID int32, sc *domain.Scooter) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.CanManageScooters() {
		return fmt.Errorf("%w: user %d may not manage scooters", domain.ErrPreconditionFailed, actorID)
	}
	if !geo.ValidCoordinates(sc.Latitude, sc.Longitude) {
		return fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, sc.Latitude, sc.Longitude)
	}
	if sc.Status != "" && !sc.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, sc.Status)
	}
	if existing, err := s.scooterRepo.GetByIdentifier(ctx, sc.Identifier); err == nil && existing != nil {
		return fmt.Errorf("%w: identifier %s already registered", domain.ErrConflict, sc.Identifier)
	}
	if !actor.IsAdmin() {
		sc.ProviderID = actorID
	}
	return s.scooterRepo.Create(ctx, sc)
}

func (s *scooterService) GetScooter(ctx context.Context, id int32) (*domain.Scooter, error) {
	return s.scooterRepo.GetByID(ctx, id)
}

func (s *scooterService) UpdateScooter(ctx context.Context, actorID int32, sc *domain.Scooter) error {
	if err := s.authorizeManage(ctx, actorID, sc.ID); err != nil {
		return err
	}
	if !sc.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, sc.Status)
	}
	if !geo.ValidCoordinates(sc.Latitude, sc.Longitude) {
		return fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, sc.Latitude, sc.Longitude)
	}
	return s.scooterRepo.Update(ctx, sc)
}

func (s *scooterService) DeleteScooter(ctx context.Context, actorID, scooterID int32) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.authorizeManage(ctx, actorID, scooterID); err != nil {
			return err
		}
		active, err := s.rentalRepo.FindActiveByScooter(ctx, scooterID)
		if err != nil {
			return err
		}
		if active != nil {
			return fmt.Errorf("%w: scooter %d has an active rental", domain.ErrPreconditionFailed, scooterID)
		}
		// Historical rentals keep their cost and rating with a null
		// scooter reference.
		if err := s.rentalRepo.DetachScooter(ctx, scooterID); err != nil {
			return err
		}
		return s.scooterRepo.Delete(ctx, scooterID)
	})
}

func (s *scooterService) ListByProvider(ctx context.Context, providerID int32, page, pageSize int32) ([]domain.Scooter, int32, error) {
	return s.scooterRepo.ListByProvider(ctx, providerID, page, pageSize)
}

func (s *scooterService) SetStatus(ctx context.Context, scooterID int32, status domain.ScooterStatus) (*domain.Scooter, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	sc, err := s.scooterRepo.GetByID(ctx, scooterID)
	if err != nil {
		return nil, err
	}
	sc.Status = status
	if err := s.scooterRepo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scooterService) UpdateLocation(ctx context.Context, scooterID int32, lat, lon float64, address string) (*domain.Scooter, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, lat, lon)
	}
	sc, err := s.scooterRepo.GetByID(ctx, scooterID)
	if err != nil {
		return nil, err
	}
	sc.Latitude = lat
	sc.Longitude = lon
	if address != "" {
		sc.Address = address
	}
	if err := s.scooterRepo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *scooterService) SetStatusBy(ctx context.Context, actorID, scooterID int32, status domain.ScooterStatus) (*domain.Scooter, error) {
	if err := s.authorizeManage(ctx, actorID, scooterID); err != nil {
		return nil, err
	}
	return s.SetStatus(ctx, scooterID, status)
}

func (s *scooterService) UpdateLocationBy(ctx context.Context, actorID, scooterID int32, lat, lon float64, address string) (*domain.Scooter, error) {
	if err := s.authorizeManage(ctx, actorID, scooterID); err != nil {
		return nil, err
	}
	return s.UpdateLocation(ctx, scooterID, lat, lon, address)
}

func (s *scooterService) IsRentable(ctx context.Context, scooterID int32) (bool, error) {
	sc, err := s.scooterRepo.GetByID(ctx, scooterID)
	if err != nil {
		return false, err
	}
	return sc.IsRentable(), nil
}

func (s *scooterService) NeedsMaintenance(ctx context.Context, scooterID int32) (bool, error) {
	sc, err := s.scooterRepo.GetByID(ctx, scooterID)
	if err != nil {
		return false, err
	}
	return sc.NeedsMaintenance(time.Now()), nil
}

func (s *scooterService) CurrentActiveRental(ctx context.Context, scooterID int32) (*domain.Rental, error) {
	if _, err := s.scooterRepo.GetByID(ctx, scooterID); err != nil {
		return nil, err
	}
	return s.rentalRepo.FindActiveByScooter(ctx, scooterID)
}

func (s *scooterService) authorizeManage(ctx context.Context, actorID, scooterID int32) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	sc, err := s.scooterRepo.GetByID(ctx, scooterID)
	if err != nil {
		return err
	}
	if sc.ProviderID != actorID {
		return fmt.Errorf("%w: scooter %d is not managed by user %d", domain.ErrPreconditionFailed, scooterID, actorID)
	}
	return nil
}
