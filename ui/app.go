package ui

import (
	"net/http"

	"methodcost/app"
	"methodcost/domain/core"
	"methodcost/internal"
	uimw "methodcost/ui/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// App is the JSON HTTP API
type App struct {
	router   *chi.Mux
	projects *app.ProjectService
	analyses *app.AnalysisService
	logger   *internal.Logger
	config   Config
}

// Config holds HTTP API configuration
type Config struct {
	Port          string
	DefaultUserID uuid.UUID
	MaxUploadMB   int
}

// NewApp creates the API over the given services
func NewApp(config Config, projects *app.ProjectService, analyses *app.AnalysisService, logger *internal.Logger) *App {
	if config.DefaultUserID == uuid.Nil {
		config.DefaultUserID = core.DefaultUserID
	}
	if config.MaxUploadMB <= 0 {
		config.MaxUploadMB = 10
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	a := &App{
		router:   chi.NewRouter(),
		projects: projects,
		analyses: analyses,
		logger:   logger.With("API"),
		config:   config,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Use(uimw.UserScope(a.config.DefaultUserID))

		r.Get("/dashboard", a.handleDashboard)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", a.handleListProjects)
			r.Post("/", a.handleCreateProject)
			r.Post("/import", a.handleImportProjects)
			r.Post("/sample", a.handleLoadSampleProjects)
			r.Get("/export.csv", a.handleExportProjects)
			r.Get("/{id}", a.handleGetProject)
			r.Put("/{id}", a.handleUpdateProject)
			r.Delete("/{id}", a.handleDeleteProject)
		})

		r.Route("/analyses", func(r chi.Router) {
			r.Get("/", a.handleListAnalyses)
			r.Post("/", a.handleRunAnalysis)
			r.Get("/{id}", a.handleGetAnalysis)
			r.Delete("/{id}", a.handleDeleteAnalysis)
			r.Get("/{id}/export.{format}", a.handleExportAnalysis)
		})
	})
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Server returns an http.Server listening on the configured port
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:    ":" + a.config.Port,
		Handler: a,
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
