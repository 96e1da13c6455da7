package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
)

func TestFleetService_Nearby(t *testing.T) {
	ctx := context.Background()
	// Zurich main station.
	lat, lon := 47.3779, 8.5403

	far := domain.Scooter{ID: 1, Identifier: "SR-FAR", Latitude: 47.4100, Longitude: 8.5600, Status: domain.ScooterStatusAvailable}
	near := domain.Scooter{ID: 2, Identifier: "SR-NEAR", Latitude: 47.3781, Longitude: 8.5405, Status: domain.ScooterStatusAvailable}
	mid := domain.Scooter{ID: 3, Identifier: "SR-MID", Latitude: 47.3900, Longitude: 8.5500, Status: domain.ScooterStatusAvailable}

	t.Run("OrderedByDistance", func(t *testing.T) {
		repo := new(MockScooterRepo)
		repo.On("ListAvailableInBox", ctx, mock.AnythingOfType("geo.BoundingBox"), int32(nearbyCandidateCap)).
			Return([]domain.Scooter{far, near, mid}, nil)

		svc := NewFleetService(repo)
		got, err := svc.Nearby(ctx, lat, lon, 5, 10)
		assert.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, "SR-NEAR", got[0].Identifier)
		assert.Equal(t, "SR-MID", got[1].Identifier)
		assert.Equal(t, "SR-FAR", got[2].Identifier)
		assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
		assert.Less(t, got[1].DistanceKm, got[2].DistanceKm)
	})

	t.Run("TruncatedToLimitAfterSort", func(t *testing.T) {
		// The candidate fetch ignores the caller's limit so the cut
		// cannot drop a near scooter that storage happened to list last.
		repo := new(MockScooterRepo)
		repo.On("ListAvailableInBox", ctx, mock.AnythingOfType("geo.BoundingBox"), int32(nearbyCandidateCap)).
			Return([]domain.Scooter{far, mid, near}, nil)

		svc := NewFleetService(repo)
		got, err := svc.Nearby(ctx, lat, lon, 5, 2)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "SR-NEAR", got[0].Identifier)
		assert.Equal(t, "SR-MID", got[1].Identifier)
	})

	t.Run("NearestSurvivesWhenListedBeyondLimit", func(t *testing.T) {
		repo := new(MockScooterRepo)
		repo.On("ListAvailableInBox", ctx, mock.AnythingOfType("geo.BoundingBox"), int32(nearbyCandidateCap)).
			Return([]domain.Scooter{far, mid, near}, nil)

		svc := NewFleetService(repo)
		got, err := svc.Nearby(ctx, lat, lon, 5, 1)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "SR-NEAR", got[0].Identifier)
	})

	t.Run("BoundingBoxPassedToRepo", func(t *testing.T) {
		repo := new(MockScooterRepo)
		var captured geo.BoundingBox
		repo.On("ListAvailableInBox", ctx, mock.AnythingOfType("geo.BoundingBox"), int32(nearbyCandidateCap)).
			Run(func(args mock.Arguments) { captured = args.Get(1).(geo.BoundingBox) }).
			Return([]domain.Scooter{}, nil)

		svc := NewFleetService(repo)
		_, err := svc.Nearby(ctx, lat, lon, 5, 10)
		assert.NoError(t, err)
		assert.Less(t, captured.MinLat, lat)
		assert.Greater(t, captured.MaxLat, lat)
		assert.Less(t, captured.MinLon, lon)
		assert.Greater(t, captured.MaxLon, lon)
	})

	t.Run("InvalidCoordinates", func(t *testing.T) {
		svc := NewFleetService(new(MockScooterRepo))
		_, err := svc.Nearby(ctx, 91, 0, 5, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
		_, err = svc.Nearby(ctx, 0, -181, 5, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)
	})

	t.Run("EmptyBox", func(t *testing.T) {
		repo := new(MockScooterRepo)
		repo.On("ListAvailableInBox", ctx, mock.AnythingOfType("geo.BoundingBox"), int32(nearbyCandidateCap)).
			Return([]domain.Scooter{}, nil)

		svc := NewFleetService(repo)
		got, err := svc.Nearby(ctx, lat, lon, 5, 10)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFleetService_Available(t *testing.T) {
	ctx := context.Background()
	repo := new(MockScooterRepo)
	repo.On("ListAvailable", ctx, int32(20)).Return([]domain.Scooter{{ID: 1}, {ID: 2}}, nil)

	svc := NewFleetService(repo)
	got, err := svc.Available(ctx, 20)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
