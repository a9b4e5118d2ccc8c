package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/service"
)

const defaultNotificationLimit = 50

// NotificationHandler serves the notification history and live feed
type NotificationHandler struct {
	feed   service.Feed
	stream Streamer
	log    zerolog.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(feed service.Feed, stream Streamer, log zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		feed:   feed,
		stream: stream,
		log:    log.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /v1/notifications?limit=...
func (h *NotificationHandler) List(c *gin.Context) {
	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	notifications := h.feed.Recent(limit)
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// Stream handles GET /v1/notifications/ws
func (h *NotificationHandler) Stream(c *gin.Context) {
	if h.stream == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live notifications are not available"})
		return
	}
	// The upgrade has already answered the request when this fails
	if err := h.stream.ServeWS(c.Request.Context(), c.Writer, c.Request); err != nil {
		h.log.Warn().Err(err).Msg("Websocket connection failed")
	}
}
