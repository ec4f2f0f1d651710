package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/auth"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/config"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/database"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/http/handler"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/http/middleware"
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter

	authHandler         *handler.AuthHandler
	projectHandler      *handler.ProjectHandler
	paymentHandler      *handler.PaymentHandler
	milestoneHandler    *handler.MilestoneHandler
	timeEntryHandler    *handler.TimeEntryHandler
	assignmentHandler   *handler.AssignmentHandler
	notificationHandler *handler.NotificationHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	paymentHandler *handler.PaymentHandler,
	milestoneHandler *handler.MilestoneHandler,
	timeEntryHandler *handler.TimeEntryHandler,
	assignmentHandler *handler.AssignmentHandler,
	notificationHandler *handler.NotificationHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		projectHandler:      projectHandler,
		paymentHandler:      paymentHandler,
		milestoneHandler:    milestoneHandler,
		timeEntryHandler:    timeEntryHandler,
		assignmentHandler:   assignmentHandler,
		notificationHandler: notificationHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": statusLabel(allHealthy),
			"checks": checks,
		})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth & accounts
			r.Get("/auth/me", rt.authHandler.Me)
			r.With(rt.authMiddleware.RequireAdmin).Post("/auth/register", rt.authHandler.Register)
			r.With(rt.authMiddleware.RequireAdmin).Get("/users", rt.authHandler.ListUsers)

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Get("/{id}", rt.projectHandler.Get)

				// Admin-only project lifecycle and maintenance
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireAdmin)
					r.Post("/", rt.projectHandler.Create)
					r.Put("/{id}", rt.projectHandler.Update)
					r.Delete("/{id}", rt.projectHandler.Delete)
					r.Put("/{id}/client-status", rt.projectHandler.UpdateClientStatus)
					r.Put("/{id}/visibility", rt.projectHandler.UpdateVisibility)
					r.Put("/{id}/recalculate", rt.projectHandler.Recalculate)

					// Staffing overrides
					r.Put("/{id}/teamlead", rt.assignmentHandler.AssignTeamLead)
					r.Put("/{id}/employees", rt.assignmentHandler.AssignEmployees)

					// Payment ledger
					r.Post("/{id}/payments", rt.paymentHandler.Add)
					r.Put("/{id}/payments/{paymentId}", rt.paymentHandler.Update)
					r.Delete("/{id}/payments/{paymentId}", rt.paymentHandler.Delete)

					// Milestone ledger
					r.Post("/{id}/milestones", rt.milestoneHandler.Add)
					r.Put("/{id}/milestones/{milestoneId}", rt.milestoneHandler.Update)
					r.Delete("/{id}/milestones/{milestoneId}", rt.milestoneHandler.Delete)
				})

				// Assignment lifecycle (team leads)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireRole(domain.RoleTeamLead))
					r.Put("/{id}/pick", rt.assignmentHandler.Pick)
					r.Put("/{id}/release", rt.assignmentHandler.Release)
				})

				// Time ledger (admins and team leads)
				r.Group(func(r chi.Router) {
					r.Use(rt.authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleTeamLead))
					r.Post("/{id}/time-entries", rt.timeEntryHandler.Add)
					r.Put("/{id}/time-entries/{entryId}", rt.timeEntryHandler.Update)
					r.Delete("/{id}/time-entries/{entryId}", rt.timeEntryHandler.Delete)
				})
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Get("/unread-count", rt.notificationHandler.CountUnread)
				r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
			})
		})
	})

	return r
}

func statusLabel(healthy bool) string {
	if healthy {
		return "healthy"
	}
	return "unhealthy"
}
