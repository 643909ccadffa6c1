package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"draftpulse/internal/config"
	apierrors "draftpulse/internal/errors"
	"draftpulse/internal/infrastructure"
	"draftpulse/internal/middleware"
	"draftpulse/internal/operations"
	"draftpulse/internal/scraper"
	"draftpulse/internal/services"
	transporthttp "draftpulse/internal/transport/http"
	ws "draftpulse/internal/websocket"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Application wires configuration, observability, services, and the HTTP
// server together.
type Application struct {
	Config *config.Config
	Paths  *config.Paths
	Logger *slog.Logger

	otel    *infrastructure.OTelProviders
	metrics *infrastructure.PipelineMetrics

	hub               *ws.Hub
	dataService       *services.DataService
	operationsService *services.OperationsService
	healthService     *services.HealthService

	router chi.Router
	server *http.Server

	frontendFS fs.FS
}

// NewApplication builds a fully wired application. frontendFS serves the
// dashboard page and may be nil for API-only use.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var paths *config.Paths
	if cfg.Paths.BaseDir != "" {
		paths = config.NewPaths(cfg.Paths.BaseDir)
	} else if paths, err = config.GetPaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create data directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		frontendFS: frontendFS,
	}

	if err := app.initializeObservability(); err != nil {
		return nil, err
	}
	if err := app.initializeServices(); err != nil {
		return nil, err
	}
	app.setupRouter()
	app.createServer()

	return app, nil
}

func (a *Application) initializeObservability() error {
	providers, err := infrastructure.InitializeOTel(nil, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	a.otel = providers

	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}
	a.metrics = metrics
	return nil
}

func (a *Application) initializeServices() error {
	a.hub = ws.NewHub(a.Logger)

	client := scraper.NewClient(a.Config.Scraper, a.Logger)
	runner := scraper.NewRunner(client, a.Paths, a.metrics, a.Logger)

	manager := operations.NewManager(a.metrics, a.Logger)
	manager.RegisterStep(operations.NewScrapeStep(runner, a.Config.Scraper))
	manager.RegisterStep(operations.NewCleanStep(a.Paths, a.Logger))
	manager.RegisterStep(operations.NewMergeStep(a.Paths, a.Config.Analysis, a.metrics, a.Logger))
	manager.RegisterStep(operations.NewAnalyzeStep(a.Paths, a.Config.Analysis, a.Logger))

	a.dataService = services.NewDataService(a.Paths, a.Config.Analysis, a.Logger)
	a.operationsService = services.NewOperationsService(manager, a.hub, a.dataService, a.Config.Server.OperationTimeout, a.Logger)
	a.healthService = services.NewHealthService(Version, a.Paths, a.operationsService, a.hub, a.Logger)

	return nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(chimiddleware.Compress(5))

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		dataHandler := transporthttp.NewDataHandler(a.dataService, a.Logger, errorHandler)
		r.Mount("/data", dataHandler.Routes())

		operationsHandler := transporthttp.NewOperationsHandler(a.operationsService, a.Logger, errorHandler)
		r.Mount("/operations", operationsHandler.Routes())

		healthHandler := transporthttp.NewHealthHandler(a.healthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
	})

	if a.otel.PrometheusHTTP != nil {
		r.Handle("/metrics", a.otel.PrometheusHTTP)
	}

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(a.hub, w, r)
	})

	if a.frontendFS != nil {
		r.Handle("/*", http.FileServer(http.FS(a.frontendFS)))
	}

	a.router = r
}

func (a *Application) createServer() {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Router exposes the HTTP handler, mainly for tests.
func (a *Application) Router() http.Handler {
	return a.router
}

// Run starts the hub and HTTP server and blocks until SIGINT/SIGTERM or a
// server error, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.hub.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server starting",
			slog.String("addr", a.server.Addr),
			slog.String("version", Version))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown()
	})

	err := g.Wait()
	infrastructure.CloseLogFile()
	return err
}

func (a *Application) shutdown() error {
	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		firstErr = fmt.Errorf("server shutdown: %w", err)
	}
	a.hub.Shutdown()
	if err := a.otel.Shutdown(shutdownCtx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("observability shutdown: %w", err)
	}

	a.Logger.Info("shutdown complete")
	return firstErr
}
