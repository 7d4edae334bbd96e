package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/metrics"
	"github.com/schedcu/rotacheck/internal/repository"

	"go.uber.org/zap"
)

// Router creates and configures the Echo router.
type Router struct {
	echo     *echo.Echo
	handlers *Handlers
}

// NewRouter creates a new Echo router wired to this domain's engine
// packages: the repository layer, the persisted-config store, the
// optimizer job queue, and the Prometheus registry. scheduler is an
// Enqueuer rather than a concrete *job.Scheduler so callers (and tests)
// can substitute a fake that doesn't require Redis.
func NewRouter(db repository.Database, store *configstore.Store, scheduler Enqueuer, reg *metrics.Registry, log *zap.SugaredLogger) *Router {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echo.WrapMiddleware(reg.HTTPMiddleware))

	r := &Router{
		echo:     e,
		handlers: NewHandlers(db, store, scheduler, log),
	}

	r.registerRoutes(reg)

	return r
}

// registerRoutes configures the engine's HTTP surface: health and metrics,
// the per-schedule feasibility/impact/generate endpoints, config
// validation, optimizer run lookup, and export/import.
func (r *Router) registerRoutes(reg *metrics.Registry) {
	r.echo.GET("/api/health", r.handlers.Health)
	r.echo.GET("/metrics", echo.WrapHandler(reg.Handler()))

	scheduleGroup := r.echo.Group("/api/schedules")
	scheduleGroup.POST("/:id/feasibility", r.handlers.CheckFeasibilityNow)
	scheduleGroup.POST("/:id/impact", r.handlers.Impact)
	scheduleGroup.POST("/:id/generate", r.handlers.Generate)
	scheduleGroup.POST("/:id/check-feasibility", r.handlers.CheckFeasibility)

	r.echo.POST("/api/config/validate", r.handlers.ValidateConfig)
	r.echo.GET("/api/optimizer-runs/:id", r.handlers.GetOptimizerRun)
	r.echo.POST("/api/export", r.handlers.Export)
	r.echo.POST("/api/import", r.handlers.Import)
}

// Start starts the HTTP server.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
