package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"calculadora/internal/calculator"
	"calculadora/internal/handlers"
	"calculadora/internal/observability"
)

// NewRouter builds the service's HTTP handler with the calculator endpoints
// served by calc.
func NewRouter(calc *calculator.Handler) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calc)

	return r
}
