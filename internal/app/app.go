package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"cleanapi/internal/config"
	"cleanapi/internal/core"
	apierrors "cleanapi/internal/errors"
	"cleanapi/internal/infrastructure"
	customMiddleware "cleanapi/internal/middleware"
	"cleanapi/internal/services"
	handlers "cleanapi/internal/transport/http"
	"cleanapi/pkg/contracts"
	api "cleanapi/pkg/contracts/api/v1"
)

// AppName is logged at startup.
const AppName = "cleanapi"

// errShuttingDown fails the readiness probe once Stop has begun.
var errShuttingDown = errors.New("server is shutting down")

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	HTTPMetrics   *infrastructure.HTTPMetrics
	ErrorHandler  *apierrors.ErrorHandler
	Services      *ServiceContainer

	mu       sync.Mutex
	listener net.Listener
	serveErr chan error
	draining atomic.Bool
	stopOnce sync.Once
	stopErr  error
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Health    *services.HealthService
	ClientLog *services.ClientLogService
	Validator *services.Validator
}

// NewApplication creates a new application instance with dependency
// injection. A nil cfg is loaded from the environment. The process logger is
// initialized here.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.LoggingConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return newApplication(cfg, logger)
}

func newApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("environment", cfg.Environment))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	httpMetrics, err := infrastructure.CreateHTTPMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		HTTPMetrics:   httpMetrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger).WithMetrics(httpMetrics),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	validator := services.NewValidator()

	health := services.NewHealthService(contracts.Version, a.Logger)
	health.RegisterProbe("server", func(context.Context) error {
		if a.draining.Load() {
			return errShuttingDown
		}
		return nil
	})

	a.Services = &ServiceContainer{
		Health:    health,
		ClientLog: services.NewClientLogService(a.Logger, validator),
		Validator: validator,
	}
}

func (a *Application) controllers() handlers.APIControllers {
	health := a.Services.Health

	return handlers.APIControllers{
		Health: handlers.NewQueryController[api.HealthStatus]("HealthController",
			core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](health.HealthCheck), a.Logger),
		Liveness: handlers.NewQueryController[api.HealthStatus]("LivenessController",
			core.UseCaseFunc[core.NoRequest, core.Result[api.HealthStatus]](health.LivenessCheck), a.Logger),
		Version: handlers.NewQueryController[contracts.VersionInfo]("VersionController",
			core.UseCaseFunc[core.NoRequest, core.Result[contracts.VersionInfo]](health.Version), a.Logger),
		ClientLog: handlers.NewClientLogController(
			core.UseCaseFunc[api.ClientLogRequest, core.Result[struct{}]](a.Services.ClientLog.LogClientEvent), a.Logger),
	}
}

// setupRouter configures the HTTP router with all routes.
// Order: RequestID → RealIP → OTel → Logger → Recoverer → headers → limits → Timeout
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.HTTPMetrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
		AllowedOrigins:   a.Config.CORS.AllowedOrigins,
		AllowCredentials: a.Config.CORS.AllowCredentials,
		Logger:           a.Logger,
	}))

	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

	// Set before mounting so the /api subrouter inherits them
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Mount("/api", a.controllers().Routes(a.ErrorHandler.HandleError))

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Address(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(infrastructure.WithComponent(a.Logger, "http_server").Handler(), slog.LevelError),
	}
}

// Start binds the listen address and serves in the background. Bind errors
// are returned directly.
func (a *Application) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()
	a.serveErr = make(chan error, 1)

	go func() {
		err := a.Server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		a.serveErr <- err
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", ln.Addr().String()),
		slog.String("version", contracts.Version),
		slog.String("level", a.Config.Level))

	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.Server.Addr
}

// Stop gracefully stops the application. Readiness starts failing first so
// load balancers drain the instance. Only the first call does any work.
func (a *Application) Stop(ctx context.Context) error {
	a.stopOnce.Do(func() {
		a.stopErr = a.stop(ctx)
	})
	return a.stopErr
}

func (a *Application) stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")
	a.draining.Store(true)

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.Any("error", err))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// Run starts the application and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the server fails. It then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := <-a.serveErr; err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			a.Logger.Info("Received shutdown signal")
		}
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}
