package jobs

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByCode(ctx context.Context, code string) (*domain.Rental, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) FindActiveByUser(ctx context.Context, userID int32) (*domain.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FindActiveByScooter(ctx context.Context, scooterID int32) (*domain.Rental, error) {
	args := m.Called(ctx, scooterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListActiveStartedBefore(ctx context.Context, cutoff time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus, limit int32) ([]domain.Rental, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) DetachScooter(ctx context.Context, scooterID int32) error {
	args := m.Called(ctx, scooterID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockScooterRepo
type MockScooterRepo struct {
	mock.Mock
}

func (m *MockScooterRepo) Create(ctx context.Context, sc *domain.Scooter) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}
func (m *MockScooterRepo) GetByID(ctx context.Context, id int32) (*domain.Scooter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Scooter, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) Update(ctx context.Context, sc *domain.Scooter) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}
func (m *MockScooterRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockScooterRepo) ListByProvider(ctx context.Context, providerID int32, page, pageSize int32) ([]domain.Scooter, int32, error) {
	args := m.Called(ctx, providerID, page, pageSize)
	return args.Get(0).([]domain.Scooter), args.Get(1).(int32), args.Error(2)
}
func (m *MockScooterRepo) ListAvailable(ctx context.Context, limit int32) ([]domain.Scooter, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) ListAvailableInBox(ctx context.Context, box geo.BoundingBox, limit int32) ([]domain.Scooter, error) {
	args := m.Called(ctx, box, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scooter), args.Error(1)
}
func (m *MockScooterRepo) ListNeedingMaintenance(ctx context.Context, now time.Time, limit int32) ([]domain.Scooter, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scooter), args.Error(1)
}

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) Start(ctx context.Context, userID, scooterID int32, startLat, startLon float64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, scooterID, startLat, startLon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) End(ctx context.Context, userID, rentalID int32, endLat, endLon *float64) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID, endLat, endLon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) Cancel(ctx context.Context, userID, rentalID int32, reason string) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) AddRating(ctx context.Context, userID, rentalID int32, rating int32, feedback string) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID, rating, feedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) CheckOverdue(ctx context.Context, rentalID int32, now time.Time) (bool, error) {
	args := m.Called(ctx, rentalID, now)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, userID, rentalID int32) (*domain.Rental, error) {
	args := m.Called(ctx, userID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ListRentals(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalReceipt(ctx context.Context, email, name, rentalCode string, durationMinutes int32, totalCost float64) error {
	args := m.Called(ctx, email, name, rentalCode, durationMinutes, totalCost)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, name, rentalCode string, startedAt time.Time) error {
	args := m.Called(ctx, email, name, rentalCode, startedAt)
	return args.Error(0)
}
func (m *MockEmailService) SendMaintenanceAlert(ctx context.Context, providerEmail, providerName, identifier string, batteryLevel int32) error {
	args := m.Called(ctx, providerEmail, providerName, identifier, batteryLevel)
	return args.Error(0)
}
