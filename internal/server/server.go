package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agileboard/internal/apperr"
	"agileboard/internal/auth"
	"agileboard/internal/storage/sqlite"
)

// userIDKey is the gin context key carrying the authenticated user id.
const userIDKey = "user_id"

// Server provides HTTP handlers for the agile dashboard backend.
type Server struct {
	engine    *gin.Engine
	store     *sqlite.Store
	tokens    *auth.Manager
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, tokens *auth.Manager, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:    router,
		store:     store,
		tokens:    tokens,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires the API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", s.handleRegister)
			authGroup.POST("/login", s.handleLogin)
			authGroup.GET("/profile", s.requireAuth, s.handleProfile)
		}

		projects := api.Group("/projects", s.requireAuth)
		{
			projects.GET("", s.handleListProjects)
			projects.POST("", s.handleCreateProject)
			projects.GET(":id", s.handleGetProject)
			projects.PUT(":id", s.handleUpdateProject)
			projects.DELETE(":id", s.handleDeleteProject)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireAuth resolves the bearer token and stores the user id in the
// request context. Every project-scoped handler runs behind it.
func (s *Server) requireAuth(c *gin.Context) {
	userID, err := s.tokens.Resolve(bearerToken(c.GetHeader("Authorization")))
	if err != nil {
		s.respondError(c, err)
		c.Abort()
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

// bearerToken extracts the credential from an Authorization header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return header[len(prefix):]
	}
	return ""
}

// currentUserID returns the identity placed by requireAuth.
func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError maps a taxonomy error to its status and logs everything else
// as an internal failure.
func (s *Server) respondError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// respondSuccess wraps a payload in a JSON response for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
