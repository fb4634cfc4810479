package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository"
	"github.com/cmlabs-hris/attendance-backend-go/internal/seed"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	groupService "github.com/cmlabs-hris/attendance-backend-go/internal/service/group"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	userService "github.com/cmlabs-hris/attendance-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

const (
	appName    = "attendance-tracker"
	appVersion = "v1.0.0"

	sessionCleanupInterval  = time.Hour
	sessionCleanupRetention = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()

	repos, err := repository.Open(ctx, cfg, loc)
	if err != nil {
		return err
	}
	defer repos.Close()

	// The memory store starts empty; give it the demo accounts.
	if cfg.Database.Driver == repository.DriverMemory {
		if err := seed.Run(ctx, repos); err != nil {
			return fmt.Errorf("failed to seed memory store: %w", err)
		}
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}
	hub := sse.NewHub()

	scheduler := cron.NewScheduler()
	scheduler.AddJob("refresh-token-cleanup", sessionCleanupInterval, cron.SessionCleanupJob(repos.RefreshTokens, sessionCleanupRetention))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	authSvc := serviceAuth.NewAuthService(repos.Users, repos.RefreshTokens, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(repos.Attendance, repos.Memberships, hub, loc)
	reportSvc := reportService.NewReportService(repos.Attendance, loc)
	groupSvc := groupService.NewGroupService(repos.Groups, repos.Memberships, repos.Users)
	userSvc := userService.NewUserService(repos.Users, repos.Memberships)
	dashboardSvc := dashboardService.NewDashboardService(repos.Attendance, repos.Users, repos.Groups, hub, loc)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc, loc, time.Now),
		Report:     appHTTP.NewReportHandler(reportSvc, time.Now),
		Group:      appHTTP.NewGroupHandler(groupSvc),
		User:       appHTTP.NewUserHandler(userSvc, groupSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, JWTService, hub, time.Now),
	}
	router := appHTTP.NewRouter(JWTService, handlers, logger, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Database.Driver, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
