package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"scootrapid-backend/internal/config"
	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/repository/postgres"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Rental.MaxRentalTimeHours = 12
	return cfg
}

func TestMarkOverdueRentals(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	rentalSvc := new(MockRentalService)

	store := &postgres.Store{RentalRepository: rentalRepo}
	jr := NewJobRunner(store, &Services{Rental: rentalSvc}, testConfig())

	candidates := []domain.Rental{
		{ID: 1, Status: domain.RentalStatusActive},
		{ID: 2, Status: domain.RentalStatusActive},
	}
	rentalRepo.On("ListActiveStartedBefore", mock.Anything, mock.AnythingOfType("time.Time")).Return(candidates, nil)
	rentalSvc.On("CheckOverdue", mock.Anything, int32(1), mock.AnythingOfType("time.Time")).Return(true, nil)
	rentalSvc.On("CheckOverdue", mock.Anything, int32(2), mock.AnythingOfType("time.Time")).Return(false, nil)

	jr.MarkOverdueRentals()

	rentalSvc.AssertNumberOfCalls(t, "CheckOverdue", 2)
}

func TestMarkOverdueRentals_CutoffUsesConfiguredMaximum(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	rentalSvc := new(MockRentalService)

	store := &postgres.Store{RentalRepository: rentalRepo}
	jr := NewJobRunner(store, &Services{Rental: rentalSvc}, testConfig())

	var cutoff time.Time
	rentalRepo.On("ListActiveStartedBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { cutoff = args.Get(1).(time.Time) }).
		Return([]domain.Rental{}, nil)

	before := time.Now()
	jr.MarkOverdueRentals()

	want := before.Add(-12 * time.Hour)
	if cutoff.Before(want.Add(-time.Minute)) || cutoff.After(want.Add(time.Minute)) {
		t.Fatalf("cutoff %v not within a minute of %v", cutoff, want)
	}
}

func TestSendOverdueReminders(t *testing.T) {
	rentalRepo := new(MockRentalRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)

	store := &postgres.Store{RentalRepository: rentalRepo, UserRepository: userRepo}
	jr := NewJobRunner(store, &Services{Email: emailSvc}, testConfig())

	started := time.Now().Add(-13 * time.Hour)
	overdue := []domain.Rental{{ID: 7, RentalCode: "RNT-X", UserID: 1, StartTime: started, Status: domain.RentalStatusOverdue}}
	user := &domain.User{ID: 1, Email: "rider@example.com", FirstName: "Mara"}

	rentalRepo.On("ListByStatus", mock.Anything, domain.RentalStatusOverdue, int32(500)).Return(overdue, nil)
	userRepo.On("GetByID", mock.Anything, int32(1)).Return(user, nil)
	emailSvc.On("SendOverdueReminder", mock.Anything, "rider@example.com", user.FullName(), "RNT-X", started).Return(nil)

	jr.SendOverdueReminders()

	emailSvc.AssertExpectations(t)
}

func TestFlagLowBatteryScooters(t *testing.T) {
	scooterRepo := new(MockScooterRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)

	store := &postgres.Store{ScooterRepository: scooterRepo, UserRepository: userRepo}
	jr := NewJobRunner(store, &Services{Email: emailSvc}, testConfig())

	scooters := []domain.Scooter{{ID: 42, Identifier: "SR-0042", BatteryLevel: 12, ProviderID: 9}}
	provider := &domain.User{ID: 9, Email: "fleet@example.com", FirstName: "Nils"}

	scooterRepo.On("ListNeedingMaintenance", mock.Anything, mock.AnythingOfType("time.Time"), int32(500)).Return(scooters, nil)
	userRepo.On("GetByID", mock.Anything, int32(9)).Return(provider, nil)
	emailSvc.On("SendMaintenanceAlert", mock.Anything, "fleet@example.com", provider.FullName(), "SR-0042", int32(12)).Return(nil)

	jr.FlagLowBatteryScooters()

	emailSvc.AssertExpectations(t)
	scooterRepo.AssertExpectations(t)
}
