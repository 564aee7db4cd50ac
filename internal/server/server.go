// Package server wires the panel backend together: registry, data channel,
// lifecycle controller, template factory, event hub, middleware, and routes.
package server

import (
	"context"
	"net/http"
	"time"

	apihttp "github.com/GriffinCanCode/PanelOS/backend/internal/api/http"
	"github.com/GriffinCanCode/PanelOS/backend/internal/config"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/channel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/scene"
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/template"
	"github.com/GriffinCanCode/PanelOS/backend/internal/events"
	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/middleware"
	"github.com/GriffinCanCode/PanelOS/backend/internal/monitoring"
	"github.com/GriffinCanCode/PanelOS/backend/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	controller *panel.Controller
	hub        *events.Hub
	log        *logging.Logger
}

// New creates a fully wired server instance. An optional scene enumerator
// seeds the registry with pre-existing panels before the first request.
func New(cfg *config.Config, log *logging.Logger, sceneSource scene.Enumerator) (*Server, error) {
	if log == nil {
		log = logging.NewDefault()
	}

	// Server-scoped registry so multiple instances (and tests) never fight
	// over collector registration.
	promRegistry := prometheus.NewRegistry()
	metrics := monitoring.NewMetricsWithRegistry(promRegistry)
	hub := events.NewHub(log).WithMetrics(metrics)

	manifest, err := template.LoadManifest(cfg.Templates.ManifestPath)
	if err != nil {
		log.Warn("template manifest not loaded, starting with no templates",
			zap.String("path", cfg.Templates.ManifestPath),
			zap.Error(err))
		manifest = &template.Manifest{}
	}
	factory := template.NewFactory(manifest, log)

	registry := panel.NewRegistry(log).WithMetrics(metrics)
	broker := channel.NewBroker(log).WithMetrics(metrics)
	controller := panel.NewController(registry, broker, factory, log).
		WithMetrics(metrics).
		WithEvents(hub)

	if sceneSource != nil {
		scene.NewDiscovery(registry, sceneSource, log).Run()
	}

	router := buildRouter(cfg, log, metrics, promRegistry, controller, factory, hub)

	return &Server{
		cfg:        cfg,
		router:     router,
		controller: controller,
		hub:        hub,
		log:        log,
	}, nil
}

// Controller exposes the lifecycle controller for embedding consumers
func (s *Server) Controller() *panel.Controller {
	return s.controller
}

// Router exposes the gin engine, primarily for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts serving until the listener fails
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.log.Info("starting panel backend", zap.String("addr", addr))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server and closes the event hub
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func buildRouter(
	cfg *config.Config,
	log *logging.Logger,
	metrics *monitoring.Metrics,
	promRegistry *prometheus.Registry,
	controller *panel.Controller,
	factory *template.Factory,
	hub *events.Hub,
) *gin.Engine {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(controller, factory)
	wsHandler := ws.NewHandler(hub, log).WithMetrics(metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/stats", handlers.Stats)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	// Panel lifecycle
	router.POST("/panels/show", handlers.ShowPanel)
	router.POST("/panels/hide", handlers.HidePanel)
	router.POST("/panels/hide-all", handlers.HideAll)
	router.DELETE("/panels/:kind", handlers.DestroyKind)
	router.DELETE("/panels/:kind/:instance", handlers.DestroyPanel)
	router.GET("/panels", handlers.ListPanels)
	router.GET("/panels/:kind/active", handlers.ActivePanels)
	router.GET("/panels/:kind/badge", handlers.PanelBadge)

	// Data channel
	router.POST("/data/send", handlers.SendData)
	router.POST("/data/broadcast", handlers.BroadcastData)

	// Event stream
	router.GET("/stream", wsHandler.HandleConnection)

	return router
}
