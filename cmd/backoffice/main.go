package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jfscargo/backoffice/internal/app"
	"github.com/jfscargo/backoffice/internal/attendance"
	"github.com/jfscargo/backoffice/internal/auth"
	"github.com/jfscargo/backoffice/internal/dashboard"
	"github.com/jfscargo/backoffice/internal/employees"
	"github.com/jfscargo/backoffice/internal/finance/deliveryfee"
	"github.com/jfscargo/backoffice/internal/finance/dfod"
	"github.com/jfscargo/backoffice/internal/finance/expense"
	"github.com/jfscargo/backoffice/internal/finance/outgoing"
	"github.com/jfscargo/backoffice/internal/finance/report"
	"github.com/jfscargo/backoffice/internal/ledger"
	"github.com/jfscargo/backoffice/internal/payroll"
	"github.com/jfscargo/backoffice/internal/platform/cache"
	"github.com/jfscargo/backoffice/internal/platform/db"
	"github.com/jfscargo/backoffice/internal/users"
	"github.com/jfscargo/backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg, "api")

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	cal := ledger.NewCalendar()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, jobClient, cfg.JWTSecret, cfg.JWTTTL, cfg.ResetURL)
	authHandler := auth.NewHandler(logger, authService)
	gate := auth.NewGate(cfg.JWTSecret)

	deliveryFeeService := deliveryfee.NewService(deliveryfee.NewRepository(pool), cal)
	dfodService := dfod.NewService(dfod.NewRepository(pool), cal)
	outgoingService := outgoing.NewService(outgoing.NewRepository(pool), cal)
	expenseService := expense.NewService(expense.NewRepository(pool), cal)

	reportCache := report.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := report.NewService(report.NewRepository(pool), reportCache, cal)

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), cal)
	employeesService := employees.NewService(employees.NewRepository(pool))
	attendanceService := attendance.NewService(attendance.NewRepository(pool), cal)
	payrollService := payroll.NewService(payroll.NewRepository(pool), cal)
	usersService := users.NewService(users.NewRepository(pool))

	router := app.NewRouter(app.RouterParams{
		Logger: logger,
		Config: cfg,
		Gate:   gate,

		AuthHandler:        authHandler,
		DeliveryFeeHandler: deliveryfee.NewHandler(logger, deliveryFeeService),
		DFODHandler:        dfod.NewHandler(logger, dfodService),
		OutgoingHandler:    outgoing.NewHandler(logger, outgoingService),
		ExpenseHandler:     expense.NewHandler(logger, expenseService),
		ReportHandler:      report.NewHandler(logger, reportService),
		ReportService:      reportService,
		DashboardHandler:   dashboard.NewHandler(logger, dashboardService),
		EmployeesHandler:   employees.NewHandler(logger, employeesService),
		AttendanceHandler:  attendance.NewHandler(logger, attendanceService),
		PayrollHandler:     payroll.NewHandler(logger, payrollService),
		UsersHandler:       users.NewHandler(logger, usersService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
