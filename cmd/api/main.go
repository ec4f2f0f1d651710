package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/config"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/database"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/http/handler"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/http/middleware"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/http/router"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/jobs"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/logger"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/repository"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Pick quota tunables
	quotaStatuses := make([]domain.ProjectStatus, 0, len(cfg.Assignment.QuotaProjectStatuses()))
	for _, s := range cfg.Assignment.QuotaProjectStatuses() {
		quotaStatuses = append(quotaStatuses, domain.ProjectStatus(s))
	}

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	notificationService := service.NewNotificationService(notificationRepo, userRepo, log)
	projectService := service.NewProjectService(projectRepo, db, log, quotaStatuses)
	paymentService := service.NewPaymentService(db, log)
	milestoneService := service.NewMilestoneService(db, log)
	timeEntryService := service.NewTimeEntryService(db, log)
	assignmentService := service.NewAssignmentService(
		projectRepo, userRepo, notificationService, db, log,
		cfg.Assignment.MaxConcurrentProjects, quotaStatuses,
	)
	userService := service.NewUserService(userRepo, tokenIssuer, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokenIssuer, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	paymentHandler := handler.NewPaymentHandler(paymentService, log)
	milestoneHandler := handler.NewMilestoneHandler(milestoneService, log)
	timeEntryHandler := handler.NewTimeEntryHandler(timeEntryService, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		projectHandler,
		paymentHandler,
		milestoneHandler,
		timeEntryHandler,
		assignmentHandler,
		notificationHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		totalsJob := jobs.NewTotalsRefreshJob(projectService, log)
		if err := scheduler.AddJob("totals-refresh", cfg.Jobs.TotalsRefreshCron, totalsJob.Run); err != nil {
			log.Error("Failed to register totals refresh job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started",
				zap.String("cron_expr", cfg.Jobs.TotalsRefreshCron),
			)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
