package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/activity"
	"github.com/carpediem/console/internal/auth"
	"github.com/carpediem/console/internal/portal"
	"github.com/carpediem/console/internal/stats"
	"github.com/carpediem/console/internal/transport/middleware"
	"github.com/carpediem/console/internal/transport/swagger"
	"github.com/carpediem/console/internal/uiprefs"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles every mounted handler so the wiring in cmd stays flat.
type Handlers struct {
	Auth     *auth.Handler
	Account  *account.Handler
	Portal   *portal.Handler
	Activity *activity.Handler
	Stats    *stats.Handler
	UIPrefs  *uiprefs.Handler
}

type RouterOptions struct {
	AllowedOrigins string
	MetricsEnabled bool
	MetricsPath    string
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, opts RouterOptions, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(splitOrigins(opts.AllowedOrigins)))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if opts.MetricsEnabled {
		router.Use(middleware.MetricsMiddleware())
	}

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, promhttp.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if handlers.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", handlers.Auth.Register)
				sr.Post("/login", handlers.Auth.Login)
				sr.Post("/refresh", handlers.Auth.RefreshToken)
				sr.Post("/logout", handlers.Auth.Logout)
			})

			// Everything below requires a signed-in identity with a roster row.
			r.Group(func(pr chi.Router) {
				pr.Use(handlers.Auth.AuthMiddleware)

				if handlers.Account != nil {
					pr.Get("/accounts/me", handlers.Account.GetCurrentAccount)
					pr.Patch("/accounts/me", handlers.Account.UpdateProfile)
				}

				if handlers.Portal != nil {
					pr.Get("/navigation", handlers.Portal.GetNavigation)
					pr.Get("/access", handlers.Portal.GetAccess)
				}

				if handlers.UIPrefs != nil {
					pr.Get("/ui/preferences", handlers.UIPrefs.GetPreferences)
					pr.Put("/ui/preferences", handlers.UIPrefs.UpdatePreferences)
					pr.Get("/ui/palette/{theme}", handlers.UIPrefs.GetPalette)
				}

				// Administrator surface.
				pr.Group(func(ar chi.Router) {
					ar.Use(middleware.RequireAdministrator(logger))

					if handlers.Account != nil {
						ar.Route("/utilisateurs", func(ur chi.Router) {
							ur.Get("/", handlers.Account.ListRoster)
							ur.Post("/", handlers.Account.CreateRosterEntry)
							ur.Patch("/{id}", handlers.Account.UpdateRosterEntry)
							ur.Delete("/{id}", handlers.Account.DeleteRosterEntry)
						})
					}

					if handlers.Activity != nil {
						ar.Get("/admin/activity", handlers.Activity.GetActivity)
					}

					if handlers.Stats != nil {
						ar.Route("/stats", func(sr chi.Router) {
							sr.Get("/connexions", handlers.Stats.GetMonthlySignIns)
							sr.Get("/inscriptions", handlers.Stats.GetMonthlyRegistrations)
							sr.Get("/roles", handlers.Stats.GetRoleDistribution)
						})
					}
				})
			})
		}
	})
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
