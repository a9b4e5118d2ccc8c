package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/service"
)

// UserHandler handles directory endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Search handles GET /v1/users?q=...
func (h *UserHandler) Search(c *gin.Context) {
	users := h.services.Profile.Search(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.services.Profile.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Save handles PUT /v1/users/:id
// A profile without a name is accepted but not stored.
func (h *UserHandler) Save(c *gin.Context) {
	var patch models.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	patch.ID = c.Param("id")

	u, saved, err := h.services.Profile.Save(&patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !saved {
		c.JSON(http.StatusAccepted, gin.H{
			"saved":   false,
			"message": "name is required to save a profile",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"saved": true,
		"user":  u,
	})
}

// AddSkill handles POST /v1/users/:id/:list
func (h *UserHandler) AddSkill(c *gin.Context) {
	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "label is required"})
		return
	}

	u, err := h.services.Profile.AddSkill(c.Param("id"), models.SkillList(c.Param("list")), req.Label)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RemoveSkill handles DELETE /v1/users/:id/:list/:label
func (h *UserHandler) RemoveSkill(c *gin.Context) {
	u, err := h.services.Profile.RemoveSkill(c.Param("id"), models.SkillList(c.Param("list")), c.Param("label"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Match handles GET /v1/users/:id/matches/:target
func (h *UserHandler) Match(c *gin.Context) {
	m, err := h.services.Profile.Match(c.Param("id"), c.Param("target"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
