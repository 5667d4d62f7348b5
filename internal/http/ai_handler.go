package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokebuilder/internal/service"
)

// AIHandler expone el motor de recomendación.
type AIHandler struct {
	logger  *zap.Logger
	advisor *service.AdvisorService
}

func NewAIHandler(logger *zap.Logger, advisor *service.AdvisorService) *AIHandler {
	return &AIHandler{
		logger:  logger,
		advisor: advisor,
	}
}

type teamRequest struct {
	TeamIDs []int `json:"team_ids" binding:"dive,gt=0"`
	TopN    int   `json:"top_n" binding:"omitempty,min=1,max=50"`
}

// Status maneja GET /api/v1/ai/status.
func (h *AIHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisor.Status())
}

// Recommend maneja POST /api/v1/ai/recommend.
func (h *AIHandler) Recommend(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommend request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.TeamIDs) >= service.MaxTeamSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrTeamFull.Error()})
		return
	}

	recs, err := h.advisor.RecommendPokemon(c.Request.Context(), req.TeamIDs, req.TopN)
	if err != nil {
		h.logger.Error("recommend failed", zap.Ints("team_ids", req.TeamIDs), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"team_size":       len(req.TeamIDs),
		"recommendations": recs,
	})
}

// Analyze maneja POST /api/v1/ai/analyze.
func (h *AIHandler) Analyze(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.advisor.AnalyzeTeam(c.Request.Context(), req.TeamIDs)
	if err != nil {
		h.logger.Error("analyze failed", zap.Ints("team_ids", req.TeamIDs), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": profile})
}

// Vulnerability maneja GET /api/v1/teams/vulnerability?team_ids=...
func (h *AIHandler) Vulnerability(c *gin.Context) {
	if !h.ready(c) {
		return
	}
	ids, err := parseIDList(c.QueryArray("team_ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(ids) != service.MaxTeamSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team must have exactly 6 pokemon"})
		return
	}

	v, err := h.advisor.TeamVulnerability(c.Request.Context(), ids)
	if err != nil {
		h.logger.Error("vulnerability failed", zap.Ints("team_ids", ids), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze team"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *AIHandler) ready(c *gin.Context) bool {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation engine unavailable"})
		return false
	}
	return true
}
