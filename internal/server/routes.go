package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog/internal/handlers"
	"catalog/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger)
	r.Use(middlewares.NewPrometheusMiddleware(s.registry).Instrument)
	r.Use(middlewares.NewCorsMiddleware(s.allowedOrigins))
	r.Use(s.limiter.RateLimit)

	ch := handlers.NewCommonHandler(s.health)
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	s.registerCategoryRoutes(r)
	s.registerVendorRoutes(r)

	return r
}

func (s *Server) registerCategoryRoutes(r *mux.Router) {
	ch := handlers.NewCategoryHandler(s.categoryService)
	r.HandleFunc("/api/v1/categories", ch.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/categories", ch.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/categories/{id}", ch.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/categories/{id}", ch.Update).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/categories/{id}", ch.Patch).Methods("PATCH", "OPTIONS")
}

func (s *Server) registerVendorRoutes(r *mux.Router) {
	vh := handlers.NewVendorHandler(s.vendorService)
	r.HandleFunc("/api/v1/vendors", vh.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/vendors", vh.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/vendors/{id}", vh.Get).Methods("GET", "OPTIONS")
	// Legacy misspelled path kept for existing clients.
	r.HandleFunc("/api/v1/vendrs/{id}", vh.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/v1/vendors/{id}", vh.Update).Methods("PUT", "OPTIONS")
	r.HandleFunc("/api/v1/vendors/{id}", vh.Patch).Methods("PATCH", "OPTIONS")
}
