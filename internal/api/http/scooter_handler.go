package http

import (
	"net/http"

	"scootrapid-backend/internal/domain"
)

type createScooterRequest struct {
	Identifier   string  `json:"identifier"`
	Model        string  `json:"model"`
	Brand        string  `json:"brand"`
	LicensePlate string  `json:"license_plate"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
}

func (s *Server) handleCreateScooter(w http.ResponseWriter, r *http.Request) {
	var req createScooterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Identifier == "" {
		respondError(w, http.StatusBadRequest, "identifier is required")
		return
	}

	sc := domain.NewScooter(req.Identifier, req.Model, req.Brand, req.Latitude, req.Longitude, userIDFromContext(r.Context()))
	sc.LicensePlate = req.LicensePlate
	sc.Address = req.Address

	if err := s.scooters.CreateScooter(r.Context(), userIDFromContext(r.Context()), sc); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sc)
}

func (s *Server) handleGetScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	sc, err := s.scooters.GetScooter(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

type updateScooterRequest struct {
	Identifier   *string  `json:"identifier"`
	Model        *string  `json:"model"`
	Brand        *string  `json:"brand"`
	LicensePlate *string  `json:"license_plate"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Address      *string  `json:"address"`
	BatteryLevel *int32   `json:"battery_level"`
	MaxSpeed     *int32   `json:"max_speed"`
	RangeKm      *int32   `json:"range_km"`
}

func (s *Server) handleUpdateScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	var req updateScooterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := s.scooters.GetScooter(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if req.Identifier != nil {
		sc.Identifier = *req.Identifier
	}
	if req.Model != nil {
		sc.Model = *req.Model
	}
	if req.Brand != nil {
		sc.Brand = *req.Brand
	}
	if req.LicensePlate != nil {
		sc.LicensePlate = *req.LicensePlate
	}
	if req.Latitude != nil {
		sc.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		sc.Longitude = *req.Longitude
	}
	if req.Address != nil {
		sc.Address = *req.Address
	}
	if req.BatteryLevel != nil {
		sc.BatteryLevel = *req.BatteryLevel
	}
	if req.MaxSpeed != nil {
		sc.MaxSpeed = *req.MaxSpeed
	}
	if req.RangeKm != nil {
		sc.RangeKm = *req.RangeKm
	}

	if err := s.scooters.UpdateScooter(r.Context(), userIDFromContext(r.Context()), sc); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScooter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	if err := s.scooters.DeleteScooter(r.Context(), userIDFromContext(r.Context()), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "scooter deleted"})
}

func (s *Server) handleListScooters(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	providerID := queryInt32(r, "provider_id", userIDFromContext(r.Context()))

	scooters, total, err := s.scooters.ListByProvider(r.Context(), providerID, page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: scooters, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleSetScooterStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := s.scooters.SetStatusBy(r.Context(), userIDFromContext(r.Context()), id, domain.ScooterStatus(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleUpdateScooterLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Address   string  `json:"address"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sc, err := s.scooters.UpdateLocationBy(r.Context(), userIDFromContext(r.Context()), id, req.Latitude, req.Longitude, req.Address)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sc)
}

func (s *Server) handleScooterRentable(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	rentable, err := s.scooters.IsRentable(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"rentable": rentable})
}

func (s *Server) handleScooterMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	due, err := s.scooters.NeedsMaintenance(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"needs_maintenance": due})
}

func (s *Server) handleScooterActiveRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scooter id")
		return
	}
	rental, err := s.scooters.CurrentActiveRental(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if rental == nil {
		respondJSON(w, http.StatusOK, map[string]any{"rental": nil})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rental": rental})
}

func (s *Server) handleNearbyScooters(w http.ResponseWriter, r *http.Request) {
	lat, okLat := queryFloat(r, "lat")
	lon, okLon := queryFloat(r, "lon")
	if !okLat || !okLon {
		respondError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	radius, ok := queryFloat(r, "radius_km")
	if !ok || radius <= 0 {
		radius = s.defaults.RadiusKm
	}
	limit := queryInt32(r, "limit", s.defaults.Limit)

	results, err := s.fleet.Nearby(r.Context(), lat, lon, radius, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"scooters": results, "count": len(results)})
}

func (s *Server) handleAvailableScooters(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", s.defaults.Limit)
	scooters, err := s.fleet.Available(r.Context(), limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"scooters": scooters, "count": len(scooters)})
}
