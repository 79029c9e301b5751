package server

import (
	"context"
	"net/http"
	"time"

	"engdata-admin/internal/common/api"
	"engdata-admin/internal/common/config"
	"engdata-admin/internal/common/downstream"
	"engdata-admin/internal/common/logger"
	"engdata-admin/internal/saga"
	"engdata-admin/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const APIPrefix = "/api/v1"

// Pinger is a dependency checked by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Config   *config.Config
	Caller   downstream.Caller
	Logger   logger.Logger
	Recorder saga.Recorder
	Registry *registry.OperationRegistry
	// Checks are named dependencies reported by /healthz.
	Checks map[string]Pinger
}

// NewRouter builds the gin engine serving every operation plus health and metrics.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	var orchOpts []saga.Option
	if opts.Recorder != nil {
		orchOpts = append(orchOpts, saga.WithRecorder(opts.Recorder))
	}
	orchestrator := saga.NewOrchestrator(log, orchOpts...)

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.AccessLog(log))

	router.GET("/healthz", healthHandler(opts.Checks))
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group(APIPrefix)
	v1.Use(api.MaxBodySize(int64(cfg.Server.MaxUploadMB) << 20))
	RegisterRoutes(v1, NewHandlers(opts.Caller, orchestrator, log), cfg, reg)

	return router
}

func healthHandler(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}

// Server wraps http.Server with the configured timeouts.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func New(cfg config.ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger: log,
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
