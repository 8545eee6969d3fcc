package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jfscargo/backoffice/internal/attendance"
	"github.com/jfscargo/backoffice/internal/auth"
	"github.com/jfscargo/backoffice/internal/dashboard"
	"github.com/jfscargo/backoffice/internal/employees"
	"github.com/jfscargo/backoffice/internal/finance/deliveryfee"
	"github.com/jfscargo/backoffice/internal/finance/dfod"
	"github.com/jfscargo/backoffice/internal/finance/expense"
	"github.com/jfscargo/backoffice/internal/finance/outgoing"
	"github.com/jfscargo/backoffice/internal/finance/report"
	"github.com/jfscargo/backoffice/internal/payroll"
	"github.com/jfscargo/backoffice/internal/shared"
	"github.com/jfscargo/backoffice/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config
	Gate   *auth.Gate

	AuthHandler        *auth.Handler
	DeliveryFeeHandler *deliveryfee.Handler
	DFODHandler        *dfod.Handler
	OutgoingHandler    *outgoing.Handler
	ExpenseHandler     *expense.Handler
	ReportHandler      *report.Handler
	ReportService      *report.Service
	DashboardHandler   *dashboard.Handler
	EmployeesHandler   *employees.Handler
	AttendanceHandler  *attendance.Handler
	PayrollHandler     *payroll.Handler
	UsersHandler       *users.Handler
}

// NewRouter constructs the chi.Router with back-office defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.Gate.RequireAuth)

		// Ledger mutations invalidate the cached daily reports.
		r.Group(func(r chi.Router) {
			r.Use(invalidateReports(params.Logger, params.ReportService))
			r.Route("/delivery-fee", params.DeliveryFeeHandler.MountRoutes)
			r.Route("/dfod", params.DFODHandler.MountRoutes)
			r.Route("/outgoing", params.OutgoingHandler.MountRoutes)
			r.Route("/expense", params.ExpenseHandler.MountRoutes)
		})

		r.Route("/report", params.ReportHandler.MountRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
		r.Route("/attendance", params.AttendanceHandler.MountRoutes)
		r.Route("/payroll", params.PayrollHandler.MountRoutes)

		// Account management is owner-only end to end.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(shared.RoleSuperAdmin))
			r.Route("/users", params.UsersHandler.MountRoutes)
		})
	})

	return r
}

// invalidateReports bumps the report cache version after any request that
// changed ledger state. Reads pass through untouched.
func invalidateReports(logger *slog.Logger, reports *report.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if ww.Status() < http.StatusBadRequest {
				if err := reports.Invalidate(r.Context()); err != nil {
					logger.Warn("invalidate report cache", slog.Any("error", err))
				}
			}
		})
	}
}
