package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pmboard/taskmanager-api/internal/api/handler"
	"github.com/pmboard/taskmanager-api/internal/api/middleware"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

const bodyLimit = "1M"

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Tasks    ports.TaskService
	Tokens   ports.TokenVerifier

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check

	CORSOrigins []string
	Logger      zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: origins}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "taskmanager",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Attached per route so unknown /api paths reach the 404 handler unguarded.
	auth := middleware.Auth(d.Tokens)

	// --- Project routes ---
	projectHandler := handler.NewProjectHandler(d.Projects)
	api.GET("/projects", projectHandler.List, auth)
	api.POST("/projects", projectHandler.Create, auth)
	api.GET("/projects/:id", projectHandler.Get, auth)
	api.PUT("/projects/:id", projectHandler.Update, auth)
	api.DELETE("/projects/:id", projectHandler.Delete, auth)

	// --- Task routes ---
	taskHandler := handler.NewTaskHandler(d.Tasks)
	api.GET("/tasks/project/:projectId", taskHandler.ListByProject, auth)
	api.GET("/tasks/:id", taskHandler.Get, auth)
	api.POST("/tasks", taskHandler.Create, auth)
	api.PUT("/tasks/:id", taskHandler.Update, auth)
	api.PATCH("/tasks/:id", taskHandler.Update, auth)
	api.DELETE("/tasks/:id", taskHandler.Delete, auth)

	return e
}
