package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/access"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/service"
)

const (
	headerUserID    = "X-User-ID"
	headerAdminMode = "X-Admin-Mode"
	actorKey        = "actor"
)

// Streamer attaches websocket clients to the live notification feed
type Streamer interface {
	ServeWS(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, feed service.Feed, stream Streamer, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(actorMiddleware())

	// Handlers
	userHandler := NewUserHandler(services, log)
	swapHandler := NewSwapHandler(services, log)
	adminHandler := NewAdminHandler(services, log)
	notificationHandler := NewNotificationHandler(feed, stream, log)
	importHandler := NewImportHandler(services, cfg, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/v1")
	{
		// Directory endpoints
		users := v1.Group("/users")
		{
			users.GET("", userHandler.Search)
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Save)
			users.POST("/:id/:list", userHandler.AddSkill)
			users.DELETE("/:id/:list/:label", userHandler.RemoveSkill)
			users.GET("/:id/matches/:target", userHandler.Match)
		}

		// Swap request endpoints
		swaps := v1.Group("/swaps")
		{
			swaps.GET("", swapHandler.List)
			swaps.POST("", swapHandler.Submit)
			swaps.GET("/:id", swapHandler.Get)
			swaps.PATCH("/:id", swapHandler.Respond)
			swaps.DELETE("/:id", swapHandler.Delete)
		}

		// Notification endpoints
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/ws", notificationHandler.Stream)
		}

		// Moderation endpoints
		admin := v1.Group("/admin", adminOnly())
		{
			admin.GET("/overview", adminHandler.Overview)
			admin.GET("/users", adminHandler.Users)
			admin.POST("/users/:id/ban", adminHandler.Ban)
			admin.GET("/swaps", adminHandler.Swaps)
			admin.GET("/reports", adminHandler.Reports)
			admin.POST("/reports/:id/approve", adminHandler.ApproveReport)
			admin.POST("/reports/:id/reject", adminHandler.RejectReport)
			admin.POST("/messages", adminHandler.Broadcast)
			admin.GET("/exports", exportHandler.StreamReport)
			admin.POST("/imports", importHandler.CreateImport)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "skillswap-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("user_id", actorFrom(c).UserID).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+headerUserID+", "+headerAdminMode)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// actorMiddleware derives the caller from the identity headers.
// No credentials are checked: admin mode is whatever the client asserts.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := access.Member(c.GetHeader(headerUserID))
		if admin, err := strconv.ParseBool(c.GetHeader(headerAdminMode)); err == nil && admin {
			actor.Role = access.RoleAdmin
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// adminOnly rejects callers without the admin role
func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).CanModerate() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin mode required"})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) access.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(access.Actor); ok {
			return actor
		}
	}
	return access.Actor{}
}
