/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. requestLogger: One slog line per request
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. CORS:          Cross-origin requests for the frontend
  5. authenticate:  Bearer token -> *session.Context on the request context

ROUTE GROUPS:
  /api/auth/*        Login, logout, current user
  /api/employees/*   Employees, leave log and leave summary per employee
  /api/categories/*  Leave categories
  /api/leave/*       Approve, reject and delete leave entries
  /api/calendar/*    Production calendar and working-day counts
  /api/reports/*     Tabular reports (JSON or PDF)
  /api/scenarios/*   Demo data (admin only)

ACCESS:
  Reads of reference data need any signed-in user. Writes need hr.
  Per-employee leave routes also admit the employee linked to the caller,
  checked in the handler.

SEE ALSO:
  - handlers.go: Handler implementations
  - middleware.go: Logging and auth middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/warp/leave-engine/session"
)

// DefaultAllowedOrigins is used when no CORS origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Use(authenticate(h.Sessions, h.logger))

	hr := requireRole(session.RoleHR)
	approvers := requireRole(session.RoleManager, session.RoleHR)

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(requireAuth).Post("/logout", h.Logout)
			r.With(requireAuth).Get("/me", h.Me)
		})

		// Everything below needs a signed-in user
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Employee routes
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.ListEmployees)
				r.With(hr).Post("/", h.CreateEmployee)
				r.Get("/{id}", h.GetEmployee)
				r.Get("/{id}/leave-summary", h.GetLeaveSummary)
				r.Get("/{id}/leave", h.ListEmployeeLeave)
				r.Post("/{id}/leave", h.SubmitLeave)
			})

			// Category routes
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.ListCategories)
				r.With(hr).Post("/", h.CreateCategory)
			})

			// Leave log routes
			r.Route("/leave", func(r chi.Router) {
				r.With(approvers).Get("/", h.ListLeave)
				r.With(approvers).Post("/{id}/approve", h.ApproveLeave)
				r.With(approvers).Post("/{id}/reject", h.RejectLeave)
				r.With(hr).Delete("/{id}", h.DeleteLeave)
			})

			// Production calendar routes
			r.Route("/calendar", func(r chi.Router) {
				r.Get("/working-days", h.CountWorkingDays)
				r.Get("/{year}", h.GetCalendarYear)
				r.With(hr).Put("/{year}/{month}", h.SetCalendarMonth)
			})

			// Report routes
			r.Route("/reports", func(r chi.Router) {
				r.Use(approvers)
				r.Get("/", h.ListReports)
				r.Get("/{kind}", h.GetReport)
			})

			// Scenario routes
			r.Route("/scenarios", func(r chi.Router) {
				r.Use(requireRole(session.RoleAdmin))
				r.Get("/", h.ListScenarios)
				r.Get("/current", h.GetCurrentScenario)
				r.Post("/load", h.LoadScenario)
			})
		})
	})

	return r
}
