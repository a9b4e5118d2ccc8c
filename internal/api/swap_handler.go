package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/service"
)

// SwapHandler handles swap request endpoints
type SwapHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSwapHandler creates a new SwapHandler
func NewSwapHandler(services *service.Services, log zerolog.Logger) *SwapHandler {
	return &SwapHandler{
		services: services,
		log:      log.With().Str("handler", "swap").Logger(),
	}
}

// List handles GET /v1/swaps?user=...
func (h *SwapHandler) List(c *gin.Context) {
	requests := h.services.Swap.List(c.Query("user"))
	c.JSON(http.StatusOK, gin.H{
		"swaps": requests,
		"count": len(requests),
	})
}

// Get handles GET /v1/swaps/:id
func (h *SwapHandler) Get(c *gin.Context) {
	req, err := h.services.Swap.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Submit handles POST /v1/swaps
func (h *SwapHandler) Submit(c *gin.Context) {
	var sub models.SwapSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_user_id is required"})
		return
	}

	req, err := h.services.Swap.Submit(actorFrom(c), &sub)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// Respond handles PATCH /v1/swaps/:id
func (h *SwapHandler) Respond(c *gin.Context) {
	var body struct {
		Status models.SwapStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required (accepted, rejected)"})
		return
	}

	req, err := h.services.Swap.Respond(actorFrom(c), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// Delete handles DELETE /v1/swaps/:id
func (h *SwapHandler) Delete(c *gin.Context) {
	if err := h.services.Swap.Delete(actorFrom(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
