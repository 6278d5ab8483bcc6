package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shreebharatraj/contact-mailer/pkg/apiresponses"
	"github.com/shreebharatraj/contact-mailer/pkg/config"
	"github.com/shreebharatraj/contact-mailer/pkg/metrics"
	"github.com/shreebharatraj/contact-mailer/pkg/system"
)

// HealthTimestampLayout is UTC ISO-8601 with microseconds.
const HealthTimestampLayout = "2006-01-02T15:04:05.000000Z"

type APIController interface {
	BasePath() string
	Register(rg *gin.RouterGroup) error
	Handlers() []gin.HandlerFunc
}

type Server struct {
	gin    *gin.Engine
	config config.Config
	log    *zap.SugaredLogger
	now    func() time.Time
}

type HealthResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Timestamp      string `json:"timestamp"`
	SMTPConfigured bool   `json:"smtp_configured"`
}

func NewServer(log *zap.Logger, cfg config.Config, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		system.RequestLogger(log.Sugar()),
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.CustomRecoveryWithZap(log, true, func(c *gin.Context, _ any) {
			apiresponses.RespondInternalErrorText(c)
			c.Abort()
		}),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
	)

	s := &Server{
		gin:    engine,
		config: cfg,
		log:    log.Sugar().Named("api"),
		now:    time.Now,
	}

	engine.GET("api/health", metrics.InstrumentedHandler("health", s.getHealth))
	engine.GET("metrics", gin.WrapH(metrics.MetricsHandler()))
	engine.NoRoute(func(c *gin.Context) {
		apiresponses.RespondNotFound(c)
	})

	return s
}

// corsConfig allows every origin when the list is empty or contains "*".
// Other entries may carry a wildcard, e.g. https://*.example.com.
func corsConfig(origins []string) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", system.RequestIDHeader},
		ExposeHeaders: []string{system.RequestIDHeader},
		MaxAge:        12 * time.Hour,
		AllowWildcard: true,
	}
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}
	for _, o := range origins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = origins
	return cc
}

func (s *Server) RegisterAll(controllers []APIController) error {
	r := s.gin.Group("api")
	for _, c := range controllers {
		if err := c.Register(r.Group(c.BasePath(), c.Handlers()...)); err != nil {
			return err
		}
	}
	return nil
}

// Handler exposes the engine, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Run serves on the configured listen address until ctx is cancelled, then
// drains in-flight requests for at most Server.ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Server.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("Server listening", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Infow("Shutting down server", "timeout", s.config.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) getHealth(c *gin.Context) {
	apiresponses.RespondOK(c, HealthResponse{
		Success:        true,
		Message:        "Server is running",
		Timestamp:      s.now().UTC().Format(HealthTimestampLayout),
		SMTPConfigured: s.config.SMTPConfigured(),
	})
}
