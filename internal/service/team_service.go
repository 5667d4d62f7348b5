package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pokebuilder/internal/domain"
	"pokebuilder/internal/repository"
)

var (
	// ErrTeamFull se devuelve cuando un equipo supera los seis miembros.
	ErrTeamFull = errors.New("team already has six members")
	// ErrTeamNotOwned se devuelve al modificar o borrar un equipo de otro usuario.
	ErrTeamNotOwned = errors.New("team belongs to another user")
	// ErrTeamNotFound se devuelve cuando el equipo no existe.
	ErrTeamNotFound = errors.New("team not found")
)

// SaveTeamInput son los datos de creación o actualización de un equipo.
type SaveTeamInput struct {
	TeamID      string
	UserID      string
	Name        string
	Description string
	Format      string
	Members     []domain.TeamMember
}

// TeamService guarda y lista equipos de usuario.
type TeamService struct {
	teams  repository.TeamRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTeamService(teams repository.TeamRepository, logger *zap.Logger) *TeamService {
	return &TeamService{
		teams:  teams,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save crea un equipo nuevo o sobrescribe uno existente conservando su fecha de creación.
// Devuelve el equipo guardado y si se trató de una actualización.
func (s *TeamService) Save(ctx context.Context, in SaveTeamInput) (domain.Team, bool, error) {
	if len(in.Members) > MaxTeamSize {
		return domain.Team{}, false, ErrTeamFull
	}

	now := s.now()
	team := domain.Team{
		ID:          strings.TrimSpace(in.TeamID),
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
		Format:      in.Format,
		Members:     in.Members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if team.Members == nil {
		team.Members = []domain.TeamMember{}
	}

	updated := false
	if team.ID == "" {
		team.ID = uuid.NewString()
	} else {
		existing, err := s.teams.GetByID(ctx, team.ID)
		switch {
		case err == nil:
			if existing.UserID != in.UserID {
				return domain.Team{}, false, ErrTeamNotOwned
			}
			team.CreatedAt = existing.CreatedAt
			updated = true
		case errors.Is(err, pgx.ErrNoRows):
			s.logger.Warn("team to update not found, creating it", zap.String("team_id", team.ID))
		default:
			return domain.Team{}, false, fmt.Errorf("get team %s: %w", team.ID, err)
		}
	}

	if err := s.teams.Upsert(ctx, team); err != nil {
		return domain.Team{}, false, fmt.Errorf("upsert team %s: %w", team.ID, err)
	}
	s.logger.Info("team saved",
		zap.String("team_id", team.ID),
		zap.String("user_id", team.UserID),
		zap.Bool("updated", updated),
	)
	return team, updated, nil
}

// ListByUser devuelve los equipos del usuario, el más reciente primero.
func (s *TeamService) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	return s.teams.ListByUser(ctx, userID)
}

// Delete borra el equipo si pertenece al usuario.
func (s *TeamService) Delete(ctx context.Context, teamID, userID string) error {
	existing, err := s.teams.GetByID(ctx, teamID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTeamNotFound
	}
	if err != nil {
		return fmt.Errorf("get team %s: %w", teamID, err)
	}
	if existing.UserID != userID {
		return ErrTeamNotOwned
	}
	if err := s.teams.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team %s: %w", teamID, err)
	}
	s.logger.Info("team deleted", zap.String("team_id", teamID), zap.String("user_id", userID))
	return nil
}
