package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/middleware"
	"github.com/workpulse-hr/workpulse-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	breakRequestHandler BreakRequestHandler,
	salaryHandler SalaryHandler,
	earningsHandler EarningsHandler,
	leaveHandler LeaveHandler,
	employeeHandler EmployeeHandler,
	organizationHandler OrganizationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workpulse-hr"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.GetMyAttendance)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Get("/", attendanceHandler.List)
					r.Post("/backfill", attendanceHandler.Backfill)
					r.Get("/{id}", attendanceHandler.Get)
				})
			})

			r.Route("/break-requests", func(r chi.Router) {
				r.Post("/", breakRequestHandler.Submit)
				r.Get("/my", breakRequestHandler.GetMy)
				r.Post("/{id}/cancel", breakRequestHandler.Cancel)
				r.Delete("/{id}", breakRequestHandler.Delete)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Get("/", breakRequestHandler.List)
					r.Get("/{id}", breakRequestHandler.Get)
					r.Post("/{id}/approve", breakRequestHandler.Approve)
					r.Post("/{id}/reject", breakRequestHandler.Reject)
					r.Put("/{id}/break", breakRequestHandler.EditApproved)
					r.Post("/direct-assign", breakRequestHandler.DirectAssign)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.Submit)
				r.Get("/my", leaveHandler.GetMy)
				r.Get("/balance", leaveHandler.GetMyBalance)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Get("/", leaveHandler.List)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Use(middleware.HROnly)
				r.Post("/", salaryHandler.Record)
				r.Get("/{employeeID}/history", salaryHandler.History)
				r.Get("/{employeeID}/current", salaryHandler.Current)
				r.Get("/{employeeID}/pending", salaryHandler.Pending)
			})

			r.Route("/earnings", func(r chi.Router) {
				r.Get("/my", earningsHandler.GetMyMonthly)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Get("/{employeeID}", earningsHandler.GetMonthly)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.GetMyProfile)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Get("/", employeeHandler.List)
					r.Put("/{id}/schedule", employeeHandler.UpdateSchedule)
					r.Put("/{id}/wifi-check", employeeHandler.UpdateWiFiCheck)
				})
			})

			r.Route("/organization", func(r chi.Router) {
				r.Get("/", organizationHandler.GetSettings)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Put("/allowed-ssids", organizationHandler.UpdateAllowedSSIDs)
				})
			})
		})
	})

	return r
}
