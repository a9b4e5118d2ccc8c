package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/service"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Overview handles GET /v1/admin/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.services.Admin.Overview(actorFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Users handles GET /v1/admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.services.Admin.Users(actorFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// Ban handles POST /v1/admin/users/:id/ban
func (h *AdminHandler) Ban(c *gin.Context) {
	u, err := h.services.Admin.Ban(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Swaps handles GET /v1/admin/swaps
func (h *AdminHandler) Swaps(c *gin.Context) {
	swaps, err := h.services.Admin.Swaps(actorFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swaps": swaps, "count": len(swaps)})
}

// Reports handles GET /v1/admin/reports
func (h *AdminHandler) Reports(c *gin.Context) {
	reports, err := h.services.Admin.Reports(actorFrom(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}

// ApproveReport handles POST /v1/admin/reports/:id/approve
func (h *AdminHandler) ApproveReport(c *gin.Context) {
	report, err := h.services.Admin.ApproveReport(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// RejectReport handles POST /v1/admin/reports/:id/reject
func (h *AdminHandler) RejectReport(c *gin.Context) {
	report, err := h.services.Admin.RejectReport(actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Broadcast handles POST /v1/admin/messages
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	n, err := h.services.Admin.Broadcast(actorFrom(c), req.Message)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, n)
}
