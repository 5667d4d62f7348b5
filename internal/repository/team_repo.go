package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pokebuilder/internal/domain"
)

type TeamRepository interface {
	Upsert(ctx context.Context, team domain.Team) error
	GetByID(ctx context.Context, id string) (domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Team, error)
	Delete(ctx context.Context, id string) error
}

type PgTeamRepository struct {
	pool *pgxpool.Pool
}

func NewPgTeamRepository(pool *pgxpool.Pool) *PgTeamRepository {
	return &PgTeamRepository{pool: pool}
}

// Upsert conserva created_at de la fila existente.
func (r *PgTeamRepository) Upsert(ctx context.Context, team domain.Team) error {
	const query = `
		INSERT INTO teams (id, user_id, team_name, description, format, members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			user_id = EXCLUDED.user_id,
			team_name = EXCLUDED.team_name,
			description = EXCLUDED.description,
			format = EXCLUDED.format,
			members = EXCLUDED.members,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		team.ID,
		team.UserID,
		team.Name,
		team.Description,
		team.Format,
		team.Members,
		team.CreatedAt,
		team.UpdatedAt,
	)
	return err
}

func (r *PgTeamRepository) GetByID(ctx context.Context, id string) (domain.Team, error) {
	const query = `
		SELECT id, user_id, team_name, description, format, members, created_at, updated_at
		FROM teams
		WHERE id = $1
	`
	var t domain.Team
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Description,
		&t.Format,
		&t.Members,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *PgTeamRepository) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	const query = `
		SELECT id, user_id, team_name, description, format, members, created_at, updated_at
		FROM teams
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []domain.Team{}
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Name,
			&t.Description,
			&t.Format,
			&t.Members,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *PgTeamRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}
