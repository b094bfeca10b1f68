package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/registry-api/logger"
	"github.com/kbukum/registry-api/metrics"
	"github.com/kbukum/registry-api/server/endpoint"
	"github.com/kbukum/registry-api/server/middleware"
)

// shutdownTimeout bounds a graceful Stop.
const shutdownTimeout = 5 * time.Second

// Server is an HTTP server backed by Gin. Every request passes through the
// server-level middleware (tracing, request logging) before the engine.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	mux        *http.ServeMux
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a new Server. The Gin engine is created but no Gin middleware
// is applied yet; call ApplyMiddleware before registering routes.
func New(cfg Config, log *logger.Logger, mws ...middleware.Middleware) *Server {
	// Set Gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log = log.WithComponent("server")
	engine := gin.New()
	mux := http.NewServeMux()

	// Mount Gin as the fallback handler on the root mux.
	mux.Handle("/", engine)

	stack := append([]middleware.Middleware{
		middleware.Tracing(componentName),
		middleware.RequestLogger(log),
	}, mws...)
	handler := middleware.Chain(stack...)(mux)

	// HTTP/2 cleartext alongside HTTP/1.1.
	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h2c.NewHandler(handler, h2s),
		ReadTimeout:  seconds(cfg.ReadTimeout),
		WriteTimeout: seconds(cfg.WriteTimeout),
		IdleTimeout:  seconds(cfg.IdleTimeout),
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		mux:        mux,
		config:     cfg,
		log:        log,
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// Handler returns the full handler chain, as served on the listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Handle mounts an http.Handler at the given pattern on the root ServeMux.
func (s *Server) Handle(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
	s.log.Debug("Handler mounted", map[string]interface{}{
		"pattern": pattern,
	})
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// ApplyMiddleware installs the Gin middleware stack: request-ID, metrics,
// recovery and error mapping. Metrics runs outside recovery and error
// mapping so panics and handler errors are counted with their final status.
// A nil recorder skips the metrics stage.
func (s *Server) ApplyMiddleware(rec *metrics.Recorder) {
	s.engine.Use(middleware.RequestID())
	if rec != nil {
		s.engine.Use(middleware.Metrics(rec))
	}
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.ErrorHandler())
}

// RegisterDefaultEndpoints registers /health, /version, /metrics (when a
// recorder is given) and the not-found fallback.
func (s *Server) RegisterDefaultEndpoints(serviceName string, checker endpoint.HealthChecker, rec *metrics.Recorder) {
	s.engine.GET("/health", endpoint.Health(serviceName, checker))
	s.engine.GET("/version", endpoint.Version())
	if rec != nil {
		s.engine.GET("/metrics", endpoint.Metrics(rec))
	}
	s.engine.NoRoute(endpoint.NotFound())
}

// ApplyDefaults applies the standard middleware stack and registers default endpoints.
func (s *Server) ApplyDefaults(serviceName string, checker endpoint.HealthChecker, rec *metrics.Recorder) {
	s.ApplyMiddleware(rec)
	s.RegisterDefaultEndpoints(serviceName, checker, rec)
}
