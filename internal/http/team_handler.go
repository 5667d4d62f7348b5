package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pokebuilder/internal/domain"
	"pokebuilder/internal/service"
)

// TeamHandler gestiona los equipos guardados por los usuarios.
type TeamHandler struct {
	logger *zap.Logger
	teams  *service.TeamService
}

func NewTeamHandler(logger *zap.Logger, teams *service.TeamService) *TeamHandler {
	return &TeamHandler{
		logger: logger,
		teams:  teams,
	}
}

type teamMemberRequest struct {
	BasePokemon string         `json:"base_pokemon" binding:"required"`
	Nickname    string         `json:"nickname"`
	Item        string         `json:"item"`
	Ability     string         `json:"ability"`
	TeraType    string         `json:"tera_type" binding:"omitempty,pokemon_type"`
	Nature      string         `json:"nature"`
	Moves       []string       `json:"moves" binding:"max=4"`
	EVs         map[string]int `json:"evs" binding:"omitempty,dive,keys,required,endkeys,min=0,max=252"`
}

type saveTeamRequest struct {
	TeamID      string              `json:"team_id"`
	UserID      string              `json:"user_id" binding:"required"`
	TeamName    string              `json:"team_name" binding:"required"`
	Description string              `json:"description"`
	Format      string              `json:"format" binding:"required"`
	Members     []teamMemberRequest `json:"team_members" binding:"max=6,dive"`
}

// SaveTeam maneja POST /api/v1/teams.
func (h *TeamHandler) SaveTeam(c *gin.Context) {
	var req saveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save team request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	members := make([]domain.TeamMember, 0, len(req.Members))
	for _, m := range req.Members {
		moves := m.Moves
		if moves == nil {
			moves = []string{}
		}
		evs := m.EVs
		if evs == nil {
			evs = map[string]int{}
		}
		members = append(members, domain.TeamMember{
			BasePokemon: m.BasePokemon,
			Nickname:    m.Nickname,
			Item:        m.Item,
			Ability:     m.Ability,
			TeraType:    m.TeraType,
			Nature:      m.Nature,
			Moves:       moves,
			EVs:         evs,
		})
	}

	team, updated, err := h.teams.Save(c.Request.Context(), service.SaveTeamInput{
		TeamID:      req.TeamID,
		UserID:      req.UserID,
		Name:        req.TeamName,
		Description: req.Description,
		Format:      req.Format,
		Members:     members,
	})
	switch {
	case errors.Is(err, service.ErrTeamNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "team belongs to another user"})
		return
	case errors.Is(err, service.ErrTeamFull):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("save team failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save team"})
		return
	}

	message := "team created"
	if updated {
		message = "team updated"
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   message,
		"team_id":   team.ID,
		"team_name": team.Name,
	})
}

// ListUserTeams maneja GET /api/v1/teams/user/:user_id.
func (h *TeamHandler) ListUserTeams(c *gin.Context) {
	teams, err := h.teams.ListByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.logger.Error("list teams failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list teams"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

// DeleteTeam maneja DELETE /api/v1/teams/:team_id?user_id=
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	err := h.teams.Delete(c.Request.Context(), c.Param("team_id"), userID)
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	case errors.Is(err, service.ErrTeamNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": "team belongs to another user"})
		return
	case err != nil:
		h.logger.Error("delete team failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete team"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "team deleted"})
}
