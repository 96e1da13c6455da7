package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scootrapid-backend/internal/logger"
	"scootrapid-backend/internal/security"
	"scootrapid-backend/internal/service"
)

// Server wires the REST API. All domain decisions live in the service
// layer; handlers only decode, delegate and encode.
type Server struct {
	auth     service.AuthService
	scooters service.ScooterService
	rentals  service.RentalService
	fleet    service.FleetService
	payments service.PaymentService
	tokens   security.TokenManager

	router   *mux.Router
	logger   *slog.Logger
	defaults SearchDefaults
}

// SearchDefaults are the fallback radius and result cap for fleet
// queries when the caller omits them.
type SearchDefaults struct {
	RadiusKm float64
	Limit    int32
}

func NewServer(
	auth service.AuthService,
	scooters service.ScooterService,
	rentals service.RentalService,
	fleet service.FleetService,
	payments service.PaymentService,
	tokens security.TokenManager,
	defaults SearchDefaults,
) *Server {
	s := &Server{
		auth:     auth,
		scooters: scooters,
		rentals:  rentals,
		fleet:    fleet,
		payments: payments,
		tokens:   tokens,
		router:   mux.NewRouter(),
		logger:   logger.WithService("http"),
		defaults: defaults,
	}
	if s.defaults.RadiusKm <= 0 {
		s.defaults.RadiusKm = 5
	}
	if s.defaults.Limit <= 0 {
		s.defaults.Limit = 50
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.observabilityMiddleware)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	api.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
	api.HandleFunc("/auth/refresh", s.handleRefresh).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	// Fleet queries. Registered before the {id} routes so "nearby" and
	// "available" are not swallowed by the id matcher.
	authed.HandleFunc("/scooters/nearby", s.handleNearbyScooters).Methods("GET")
	authed.HandleFunc("/scooters/available", s.handleAvailableScooters).Methods("GET")

	authed.HandleFunc("/scooters", s.handleCreateScooter).Methods("POST")
	authed.HandleFunc("/scooters", s.handleListScooters).Methods("GET")
	authed.HandleFunc("/scooters/{id:[0-9]+}", s.handleGetScooter).Methods("GET")
	authed.HandleFunc("/scooters/{id:[0-9]+}", s.handleUpdateScooter).Methods("PUT")
	authed.HandleFunc("/scooters/{id:[0-9]+}", s.handleDeleteScooter).Methods("DELETE")
	authed.HandleFunc("/scooters/{id:[0-9]+}/status", s.handleSetScooterStatus).Methods("PUT")
	authed.HandleFunc("/scooters/{id:[0-9]+}/location", s.handleUpdateScooterLocation).Methods("PUT")
	authed.HandleFunc("/scooters/{id:[0-9]+}/rentable", s.handleScooterRentable).Methods("GET")
	authed.HandleFunc("/scooters/{id:[0-9]+}/maintenance", s.handleScooterMaintenance).Methods("GET")
	authed.HandleFunc("/scooters/{id:[0-9]+}/rental", s.handleScooterActiveRental).Methods("GET")

	authed.HandleFunc("/rentals", s.handleStartRental).Methods("POST")
	authed.HandleFunc("/rentals", s.handleListRentals).Methods("GET")
	authed.HandleFunc("/rentals/{id:[0-9]+}", s.handleGetRental).Methods("GET")
	authed.HandleFunc("/rentals/{id:[0-9]+}/end", s.handleEndRental).Methods("POST")
	authed.HandleFunc("/rentals/{id:[0-9]+}/cancel", s.handleCancelRental).Methods("POST")
	authed.HandleFunc("/rentals/{id:[0-9]+}/rating", s.handleRateRental).Methods("POST")

	authed.HandleFunc("/payments", s.handleListPayments).Methods("GET")
	authed.HandleFunc("/payments/{id:[0-9]+}", s.handleGetPayment).Methods("GET")
	authed.HandleFunc("/payments/{id:[0-9]+}/refund", s.handleRefundPayment).Methods("POST")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
