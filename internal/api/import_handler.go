package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/config"
	"github.com/skillswap-api/internal/service"
)

// ImportHandler handles bulk profile import endpoints
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// CreateImport handles POST /v1/admin/imports
// Accepts a multipart file upload, or a raw body with ?format=csv|ndjson.
// The import runs synchronously and the result lists every rejected row.
func (h *ImportHandler) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()
	maxSize := h.cfg.Import.MaxUploadSize

	var body io.Reader
	format := strings.ToLower(c.Query("format"))
	if f := c.PostForm("format"); f != "" {
		format = strings.ToLower(f)
	}

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()

		// Validate file size
		if header.Size > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)),
			})
			return
		}

		// Determine file format from extension
		if format == "" {
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
		}
		body = file

		h.log.Info().
			Str("file", header.Filename).
			Int64("size_bytes", header.Size).
			Msg("Profile import upload received")
	} else {
		if c.Request.ContentLength > maxSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("body too large, max size is %d MB", maxSize/(1024*1024)),
			})
			return
		}
		body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
	}

	if format != "csv" && format != "ndjson" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: csv, ndjson"})
		return
	}

	result, err := h.services.Import.Import(ctx, actorFrom(c), body, format)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	status := http.StatusOK
	if result.FailedCount > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}
