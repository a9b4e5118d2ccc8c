package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/service"
)

// ExportHandler handles report download endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamReport handles GET /v1/admin/exports?report=...&format=...
// Streams the report directly to the response
func (h *ExportHandler) StreamReport(c *gin.Context) {
	ctx := c.Request.Context()

	report := models.ReportType(c.Query("report"))
	if report == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report parameter is required (user-activity, swap-statistics, feedback-logs)"})
		return
	}
	if !models.ValidReportTypes[report] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report must be one of: user-activity, swap-statistics, feedback-logs"})
		return
	}

	format := c.Query("format")
	if format == "" {
		format = "csv"
	}
	if !models.ValidFormats[format] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json, csv"})
		return
	}

	h.log.Info().
		Str("report", string(report)).
		Str("format", format).
		Msg("Starting report download")

	if err := h.services.Export.StreamReport(ctx, actorFrom(c), c.Writer, report, format); err != nil {
		if !c.Writer.Written() {
			respondError(c, h.log, err)
			return
		}
		h.log.Error().Err(err).Str("report", string(report)).Msg("Export failed")
		// Can't return error JSON after streaming has started
	}
}
