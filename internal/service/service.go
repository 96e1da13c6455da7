package service

import (
	"context"
	"time"

	"scootrapid-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, firstName, lastName, phone string, role domain.UserRole) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                                                                  // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

// ScooterService is the availability ledger: the single source of truth
// for a scooter's operational status and location.
type ScooterService interface {
	CreateScooter(ctx context.Context, actorID int32, sc *domain.Scooter) error
	GetScooter(ctx context.Context, id int32) (*domain.Scooter, error)
	UpdateScooter(ctx context.Context, actorID int32, sc *domain.Scooter) error
	// DeleteScooter refuses while an active rental references the
	// scooter; historical rentals are detached first so their history
	// and ratings survive.
	DeleteScooter(ctx context.Context, actorID, scooterID int32) error
	ListByProvider(ctx context.Context, providerID int32, page, pageSize int32) ([]domain.Scooter, int32, error)

	// SetStatus and UpdateLocation are the bare ledger transitions the
	// rental state machine drives; they carry no actor check.
	SetStatus(ctx context.Context, scooterID int32, status domain.ScooterStatus) (*domain.Scooter, error)
	UpdateLocation(ctx context.Context, scooterID int32, lat, lon float64, address string) (*domain.Scooter, error)
	// SetStatusBy and UpdateLocationBy are the operator-facing variants:
	// the actor must be an admin or the scooter's provider.
	SetStatusBy(ctx context.Context, actorID, scooterID int32, status domain.ScooterStatus) (*domain.Scooter, error)
	UpdateLocationBy(ctx context.Context, actorID, scooterID int32, lat, lon float64, address string) (*domain.Scooter, error)
	IsRentable(ctx context.Context, scooterID int32) (bool, error)
	NeedsMaintenance(ctx context.Context, scooterID int32) (bool, error)
	CurrentActiveRental(ctx context.Context, scooterID int32) (*domain.Rental, error)
}

// RentalService is the rental state machine. Start, End and Cancel
// mutate the rental and its scooter together inside one unit of work;
// either both transitions land or neither does.
type RentalService interface {
	Start(ctx context.Context, userID, scooterID int32, startLat, startLon float64) (*domain.Rental, error)
	End(ctx context.Context, userID, rentalID int32, endLat, endLon *float64) (*domain.Rental, error)
	Cancel(ctx context.Context, userID, rentalID int32, reason string) (*domain.Rental, error)
	AddRating(ctx context.Context, userID, rentalID int32, rating int32, feedback string) (*domain.Rental, error)
	// CheckOverdue flips an active rental to overdue once it has run
	// longer than the configured maximum. Cooperative poll; it is
	// driven by the job sweep, never by an internal timer.
	CheckOverdue(ctx context.Context, rentalID int32, now time.Time) (bool, error)
	GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error)
}

// NearbyScooter pairs a scooter with its distance from the query point.
type NearbyScooter struct {
	domain.Scooter
	DistanceKm float64 `json:"distance_km"`
}

// FleetService answers availability and proximity queries. Read-only;
// every call recomputes from current state.
type FleetService interface {
	Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int32) ([]NearbyScooter, error)
	Available(ctx context.Context, limit int32) ([]domain.Scooter, error)
}

type PaymentService interface {
	GetPayment(ctx context.Context, userID, paymentID int32) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Payment, int32, error)
	RefundPayment(ctx context.Context, actorID, paymentID int32, amount float64, reason string) (*domain.Payment, error)
}

type EmailService interface {
	SendRentalReceipt(ctx context.Context, email, name, rentalCode string, durationMinutes int32, totalCost float64) error
	SendOverdueReminder(ctx context.Context, email, name, rentalCode string, startedAt time.Time) error
	SendMaintenanceAlert(ctx context.Context, providerEmail, providerName, identifier string, batteryLevel int32) error
}
