package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"pokebuilder/internal/domain"
)

type ItemRepository interface {
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.Item, error)
	Upsert(ctx context.Context, item domain.Item) error
}

type PgItemRepository struct {
	pool *pgxpool.Pool
}

func NewPgItemRepository(pool *pgxpool.Pool) *PgItemRepository {
	return &PgItemRepository{pool: pool}
}

func (r *PgItemRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.Item, error) {
	const query = `
		SELECT item_id, name, category, cost, effect
		FROM items
		WHERE name LIKE $1
		ORDER BY name
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, escapeLike(strings.ToLower(prefix))+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Category, &it.Cost, &it.Effect); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PgItemRepository) Upsert(ctx context.Context, item domain.Item) error {
	const query = `
		INSERT INTO items (item_id, name, category, cost, effect)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (item_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			cost = EXCLUDED.cost,
			effect = EXCLUDED.effect
	`
	_, err := r.pool.Exec(ctx, query, item.ItemID, item.Name, item.Category, item.Cost, item.Effect)
	return err
}
