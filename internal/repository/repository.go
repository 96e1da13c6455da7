package repository

import (
	"context"
	"time"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
)

// UnitOfWork runs fn inside one transactional boundary. A rental
// transition and its paired scooter transition are always applied
// through the same unit so neither is observable without the other.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ScooterRepository interface {
	Create(ctx context.Context, sc *domain.Scooter) error
	GetByID(ctx context.Context, id int32) (*domain.Scooter, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Scooter, error)
	Update(ctx context.Context, sc *domain.Scooter) error
	Delete(ctx context.Context, id int32) error
	ListByProvider(ctx context.Context, providerID int32, page, pageSize int32) ([]domain.Scooter, int32, error)
	// ListAvailable returns rentable scooters (status available and
	// battery above the rentable floor) in storage order, up to limit.
	ListAvailable(ctx context.Context, limit int32) ([]domain.Scooter, error)
	// ListAvailableInBox returns available scooters inside the
	// bounding box, regardless of battery, up to limit.
	ListAvailableInBox(ctx context.Context, box geo.BoundingBox, limit int32) ([]domain.Scooter, error)
	// ListNeedingMaintenance returns scooters whose battery has dropped
	// below the maintenance floor or whose last service is older than
	// the maintenance interval, excluding offline units.
	ListNeedingMaintenance(ctx context.Context, now time.Time, limit int32) ([]domain.Scooter, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	GetByCode(ctx context.Context, code string) (*domain.Rental, error)
	Update(ctx context.Context, rt *domain.Rental) error
	// FindActiveByUser / FindActiveByScooter return (nil, nil) when no
	// active rental exists.
	FindActiveByUser(ctx context.Context, userID int32) (*domain.Rental, error)
	FindActiveByScooter(ctx context.Context, scooterID int32) (*domain.Rental, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// ListActiveStartedBefore feeds the overdue sweep.
	ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus, limit int32) ([]domain.Rental, error)
	// DetachScooter nulls the scooter reference on every rental of a
	// scooter that is being deleted, preserving rental history.
	DetachScooter(ctx context.Context, scooterID int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
}
