// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/credvault/internal/audit/http"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/config"
	credentialsHTTP "github.com/allisson/credvault/internal/credentials/http"
	hierarchyHTTP "github.com/allisson/credvault/internal/hierarchy/http"
	"github.com/allisson/credvault/internal/metrics"
	userHTTP "github.com/allisson/credvault/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new API server. The router is installed by SetupRouter.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers every route of the API. ctx bounds the lifetime of the rate
// limiter eviction goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	hierarchyHandler *hierarchyHTTP.HierarchyHandler,
	userHandler *userHTTP.UserHandler,
	credentialHandler *credentialsHTTP.CredentialHandler,
	auditLogHandler *auditHTTP.AuditLogHandler,
	authUseCase authUseCase.AuthUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(RequestContextMiddleware())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticate := authHTTP.AuthenticationMiddleware(authUseCase, s.logger)

	var ipLimit gin.HandlerFunc = passThrough
	if cfg.RateLimitAuthEnabled {
		ipLimit = authHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		)
	}

	var userLimit gin.HandlerFunc = passThrough
	if cfg.RateLimitEnabled {
		userLimit = authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ipLimit, authHandler.RegisterHandler)
		auth.POST("/login", ipLimit, authHandler.LoginHandler)
		auth.POST("/refresh", ipLimit, authenticate, authHandler.RefreshHandler)
	}

	// Registration pickers are served without a token.
	api.GET("/users/ous/public", hierarchyHandler.ListPublicOUsHandler)
	api.GET("/users/ous/:ouId/divisions/public", hierarchyHandler.ListPublicDivisionsHandler)

	protected := api.Group("", authenticate, userLimit)

	users := protected.Group("/users")
	{
		users.GET("/me", userHandler.MeHandler)
		users.PUT("/me/password", authHandler.ChangePasswordHandler)
		users.GET("", userHandler.ListHandler)
		users.GET("/ous/all", hierarchyHandler.ListOUsHandler)
		users.GET("/ous/:ouId/divisions", hierarchyHandler.ListDivisionsByOUHandler)
		users.GET("/divisions/all", hierarchyHandler.ListDivisionsHandler)
		users.POST("/:userId/assign", userHandler.AssignHandler)
		users.PUT("/:userId/role", userHandler.ChangeRoleHandler)
	}

	credentials := protected.Group("/credentials")
	{
		credentials.GET("/divisions/:divisionId/credentials", credentialHandler.ListHandler)
		credentials.POST("/divisions/:divisionId/credentials", credentialHandler.CreateHandler)
		credentials.GET("/:credentialId", credentialHandler.RevealHandler)
		credentials.PUT("/:credentialId", credentialHandler.UpdateHandler)
	}

	divisions := protected.Group("/divisions")
	{
		divisions.GET("/:divisionId/credentials", credentialHandler.ListHandler)
		divisions.POST("/:divisionId/credentials", credentialHandler.CreateHandler)
	}

	protected.GET("/audit-logs", auditLogHandler.ListHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}

func passThrough(c *gin.Context) {
	c.Next()
}
