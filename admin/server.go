package admin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/beankit/logger"
)

const shutdownTimeout = 5 * time.Second

// Server is the read-only admin HTTP server backed by Gin. It serves
// HTTP/1.1 and HTTP/2 cleartext on one port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a Server exposing beans and component health. Routes are
// registered immediately; nothing listens until Start.
func New(cfg Config, serviceName string, beans Beans, checker HealthChecker, log *logger.Logger) *Server {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("admin")

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recovery(log), requestID(), requestLogger(log))
	engine.GET("/health", healthHandler(serviceName, checker))
	engine.GET("/beans", listBeansHandler(beans))
	engine.GET("/beans/:type", getBeanHandler(beans))
	engine.GET("/version", versionHandler)

	h2s := &http2.Server{
		MaxConcurrentStreams: 100,
		IdleTimeout:          120 * time.Second,
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      h2c.NewHandler(engine, h2s),
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		},
		engine: engine,
		config: cfg,
		log:    log,
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the port and serves in a goroutine. It returns once the
// listener is bound.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("admin server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("admin server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("admin server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts the server down with a 5 second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("admin server shutdown: %w", err)
	}

	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()

	s.log.Info("admin server stopped")
	return nil
}

// Addr returns the bound address while running, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

func (s *Server) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil
}
