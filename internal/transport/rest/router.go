package rest

import (
	"database/sql"
	"log/slog"

	"github.com/frahmantamala/donation-gateway/internal/checkout"
	"github.com/frahmantamala/donation-gateway/internal/ipn"
	"github.com/frahmantamala/donation-gateway/internal/processor"
	"github.com/frahmantamala/donation-gateway/internal/transport/middleware"
	"github.com/go-chi/chi"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, processors *processor.Registry, checkoutHandler *checkout.Handler, ipnHandler *ipn.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, processors)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if checkoutHandler != nil {
			r.Post("/checkout", checkoutHandler.InitiateCheckout)
		}

		if ipnHandler != nil {
			r.Post("/ipn", ipnHandler.HandleNotification)
		}
	})
}
