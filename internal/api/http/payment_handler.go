package http

import (
	"net/http"
)

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	payment, err := s.payments.GetPayment(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	payments, total, err := s.payments.ListPayments(r.Context(), userIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: payments, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleRefundPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := s.payments.RefundPayment(r.Context(), userIDFromContext(r.Context()), id, req.Amount, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}
