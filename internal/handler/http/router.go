package http

import (
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Report     ReportHandler
	Group      GroupHandler
	User       UserHandler
	Dashboard  DashboardHandler
}

// NewRouter wires every route. logger is used for request logging; allowedOrigins feeds CORS.
func NewRouter(JWTService jwt.Service, h Handlers, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
		})

		// SSE token in the query string instead of a bearer header
		r.Get("/dashboard/stream", h.Dashboard.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-in", h.Attendance.ClockIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceClock)).Post("/clock-out", h.Attendance.ClockOut)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
					r.Get("/status", h.Attendance.Status)
					r.Get("/eligibility", h.Attendance.Eligibility)
					r.Get("/me", h.Attendance.GetMyAttendance)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/reports/attendance", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.With(middleware.RequirePermission(user.PermissionReportsView)).Get("/", h.Report.GetAttendanceReport)
					r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/export", h.Report.ExportAttendanceReport)
				})

				r.Route("/groups", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGroupManage))
					r.Get("/", h.Group.List)
					r.Post("/", h.Group.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Group.Get)
						r.Put("/", h.Group.Update)
						r.Delete("/", h.Group.Delete)
						r.Get("/members", h.Group.ListMembers)
						r.Post("/members/{userID}", h.Group.AddMember)
						r.Delete("/members/{userID}", h.Group.RemoveMember)
					})
				})

				r.Route("/users", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", h.User.List)
					r.Post("/", h.User.Create)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.User.Get)
						r.Put("/groups", h.User.AssignGroups)
						r.Patch("/active", h.User.SetActive)
					})
				})

				r.Route("/dashboard", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDashboard))
					r.Get("/", h.Dashboard.GetDashboard)
					r.Get("/sse-token", h.Dashboard.GetSSEToken)
				})
			})
		})
	})
	return r
}
