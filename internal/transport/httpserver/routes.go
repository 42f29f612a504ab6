package httpserver

import (
	"net/http"
	"time"

	"care-app-go/internal/config"
	"care-app-go/internal/metrics"
	"care-app-go/internal/transport/httpserver/handler"
	authmw "care-app-go/internal/transport/httpserver/middleware"
	"care-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every /api route. appMetrics may be nil, in which case
// requests are not instrumented and /metrics is not mounted.
func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileResolver, appMetrics *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))
	if appMetrics != nil {
		r.Use(appMetrics.Instrument)
		r.Handle("/metrics", appMetrics.Handler())
	}

	auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
	limiter := authmw.NewRateLimiter(cfg.RateLimit, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Get("/services", handlers.Common.ListServices)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Use(limiter.Handler)

			r.Get("/auth/me", handlers.Common.AuthMe)

			r.Get("/families", handlers.Families.ListFamilies)
			r.Post("/families", handlers.Families.CreateFamily)
			r.Get("/families/{id}", handlers.Families.GetFamily)
			r.Patch("/families/{id}", handlers.Families.UpdateFamily)
			r.Delete("/families/{id}", handlers.Families.DeleteFamily)

			r.Get("/applications", handlers.Applications.ListMine)
			r.Post("/applications", handlers.Applications.CreateApplication)
			r.Get("/applications/{id}", handlers.Applications.GetApplication)
			r.Patch("/applications/{id}", handlers.Applications.UpdateApplication)

			r.Get("/reservations", handlers.Reservations.ListReservations)
			r.Post("/reservations", handlers.Reservations.CreateReservation)
			r.Get("/reservations/{id}", handlers.Reservations.GetReservation)
			r.Patch("/reservations/{id}", handlers.Reservations.UpdateReservation)
			r.Delete("/reservations/{id}", handlers.Reservations.CancelReservation)

			r.Get("/notifications", handlers.Notifications.ListNotifications)
			r.Post("/notifications/mark-all-read", handlers.Notifications.MarkAllRead)
			r.Patch("/notifications/{id}", handlers.Notifications.SetRead)

			r.Get("/admin/applications", handlers.Applications.ListAll)
			r.Get("/admin/overview", handlers.Admin.Overview)
			r.Get("/admin/activity", handlers.Admin.Activity)
		})
	})

	return r
}
