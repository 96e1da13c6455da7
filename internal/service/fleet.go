package service

import (
	"context"
	"fmt"
	"sort"

	"scootrapid-backend/internal/domain"
	"scootrapid-backend/internal/geo"
	"scootrapid-backend/internal/observability"
	"scootrapid-backend/internal/repository"
)

type fleetService struct {
	scooterRepo repository.ScooterRepository
}

func NewFleetService(scooterRepo repository.ScooterRepository) FleetService {
	return &fleetService{scooterRepo: scooterRepo}
}

// nearbyCandidateCap bounds how many box candidates a single search
// pulls from storage. It must exceed any caller-facing result limit:
// the box query returns rows in storage order, so the cut to the
// caller's limit happens only after the distance sort.
const nearbyCandidateCap = 500

// Nearby narrows candidates with a bounding-box pre-filter, then ranks
// them by exact great-circle distance. Results are recomputed from
// current state on every call.
func (s *fleetService) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int32) ([]NearbyScooter, error) {
	if !geo.ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: latitude %.4f, longitude %.4f", domain.ErrInvalidCoordinates, lat, lon)
	}

	box := geo.NewBoundingBox(lat, lon, radiusKm)
	candidates, err := s.scooterRepo.ListAvailableInBox(ctx, box, nearbyCandidateCap)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyScooter, 0, len(candidates))
	for _, sc := range candidates {
		nearby = append(nearby, NearbyScooter{
			Scooter:    sc,
			DistanceKm: geo.DistanceKm(lat, lon, sc.Latitude, sc.Longitude),
		})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})
	if int32(len(nearby)) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// Available lists rentable scooters in storage order, up to limit.
func (s *fleetService) Available(ctx context.Context, limit int32) ([]domain.Scooter, error) {
	scooters, err := s.scooterRepo.ListAvailable(ctx, limit)
	if err != nil {
		return nil, err
	}
	observability.ScootersAvailable.Set(float64(len(scooters)))
	return scooters, nil
}
