package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/panchanga-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/panchanga                      full almanac for a moment and place
//	GET    /api/v1/sun                            sunrise, noon and sunset
//	GET    /api/v1/muhurta                        day divisions and choghadiya
//	GET    /api/v1/kalashtami                     next Kalashtami window
//	GET    /api/v1/locations
//	POST   /api/v1/locations                      (API key)
//	GET    /api/v1/locations/{id}
//	DELETE /api/v1/locations/{id}                 (API key)
//	GET    /api/v1/locations/{id}/panchanga
//	GET    /api/v1/locations/{id}/observances
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	authWrap := AuthMiddleware(cfg, logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/panchanga", handlers.GetPanchanga)
		r.Get("/sun", handlers.GetSun)
		r.Get("/muhurta", handlers.GetMuhurta)
		r.Get("/kalashtami", handlers.GetKalashtami)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.ListLocations)
			r.With(authWrap).Post("/", handlers.CreateLocation)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetLocation)
				r.With(authWrap).Delete("/", handlers.DeleteLocation)
				r.Get("/panchanga", handlers.GetLocationPanchanga)
				r.Get("/observances", handlers.GetLocationObservances)
			})
		})
	})

	return r
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
