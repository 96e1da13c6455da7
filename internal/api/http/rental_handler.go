package http

import (
	"net/http"
)

func (s *Server) handleStartRental(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScooterID int32   `json:"scooter_id"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ScooterID == 0 {
		respondError(w, http.StatusBadRequest, "scooter_id is required")
		return
	}

	rental, err := s.rentals.Start(r.Context(), userIDFromContext(r.Context()), req.ScooterID, req.Latitude, req.Longitude)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleEndRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := s.rentals.End(r.Context(), userIDFromContext(r.Context()), id, req.Latitude, req.Longitude)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (s *Server) handleCancelRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := s.rentals.Cancel(r.Context(), userIDFromContext(r.Context()), id, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (s *Server) handleRateRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	var req struct {
		Rating   int32  `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := s.rentals.AddRating(r.Context(), userIDFromContext(r.Context()), id, req.Rating, req.Feedback)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rental id")
		return
	}
	rental, err := s.rentals.GetRental(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	rentals, total, err := s.rentals.ListRentals(r.Context(), userIDFromContext(r.Context()), status, page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}
