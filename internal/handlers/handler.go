package handlers

import (
	"net/http"
	"time"

	"portfolio_api/internal/logger"
	"portfolio_api/internal/metrics"
	"portfolio_api/internal/models"
	"portfolio_api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultMaxUploadBytes = 5 << 20

// Option configures a Handler.
type Option func(*Handler)

// WithUploads stores project images in dir and serves them under urlPrefix.
func WithUploads(dir, urlPrefix string, maxBytes int64) Option {
	return func(h *Handler) {
		h.uploadDir = dir
		if urlPrefix != "" {
			h.uploadURLPrefix = urlPrefix
		}
		if maxBytes > 0 {
			h.maxUploadBytes = maxBytes
		}
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.allowedOrigins = origins }
}

// WithResetToken enables POST /api/auth/reset-admin guarded by token.
func WithResetToken(token string) Option {
	return func(h *Handler) { h.resetToken = token }
}

// WithMetrics instruments every route and mounts /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger

	uploadDir       string
	uploadURLPrefix string
	maxUploadBytes  int64
	allowedOrigins  []string
	resetToken      string
	metrics         *metrics.Metrics
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:        services,
		log:             log,
		uploadURLPrefix: "/uploads",
		maxUploadBytes:  defaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET(metrics.Path, gin.WrapH(h.metrics.Handler()))
	}
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.allowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", resetTokenHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if h.uploadDir != "" {
		router.Static(h.uploadURLPrefix, h.uploadDir)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/health", h.health)
		h.registerAuthRoutes(api)
		h.registerProjectRoutes(api)
		h.registerCategoryRoutes(api)
		h.registerCommentRoutes(api)
	}

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.GET("/verify", h.authenticate, h.verifyToken)
		if h.resetToken != "" {
			auth.POST("/reset-admin", h.resetAdmin)
		}
	}
}

func (h *Handler) registerProjectRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)

		manage := projects.Group("", h.authenticate, h.requireCapability(models.CapManageProjects))
		manage.POST("", h.createProject)
		manage.PUT("/:id", h.updateProject)
		manage.DELETE("/:id", h.deleteProject)
	}
}

func (h *Handler) registerCategoryRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)

		manage := categories.Group("", h.authenticate, h.requireCapability(models.CapManageCategories))
		manage.POST("", h.createCategory)
		manage.PUT("/:id", h.updateCategory)
		manage.DELETE("/:id", h.deleteCategory)
	}
}

func (h *Handler) registerCommentRoutes(api *gin.RouterGroup) {
	comments := api.Group("/comments")
	{
		comments.GET("/project/:projectId", h.listProjectComments)
		comments.POST("", h.createComment)

		moderate := h.requireCapability(models.CapModerateComments)
		comments.GET("/admin", h.authenticate, moderate, h.listAllComments)
		comments.GET("/admin/stream", h.authenticateStream, moderate, h.moderationStream)
		comments.PATCH("/:id/approve", h.authenticate, moderate, h.approveComment)
		comments.DELETE("/:id", h.authenticate, moderate, h.deleteComment)
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "portfolio API is running"})
}
