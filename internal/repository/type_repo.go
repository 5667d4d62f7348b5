package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pokebuilder/internal/domain"
)

type TypeRepository interface {
	ListAll(ctx context.Context) ([]domain.TypeRelations, error)
	Upsert(ctx context.Context, rel domain.TypeRelations) error
}

type PgTypeRepository struct {
	pool *pgxpool.Pool
}

func NewPgTypeRepository(pool *pgxpool.Pool) *PgTypeRepository {
	return &PgTypeRepository{pool: pool}
}

// ListAll devuelve las relaciones de todos los tipos almacenados.
// Los nombres desconocidos dentro de las relaciones se descartan.
func (r *PgTypeRepository) ListAll(ctx context.Context) ([]domain.TypeRelations, error) {
	const query = `
		SELECT name, double_damage_from, half_damage_from, no_damage_from,
		       double_damage_to, half_damage_to, no_damage_to
		FROM types
		ORDER BY type_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TypeRelations
	for rows.Next() {
		var (
			name                         string
			doubleFrom, halfFrom, noFrom []string
			doubleTo, halfTo, noTo       []string
		)
		if err := rows.Scan(&name, &doubleFrom, &halfFrom, &noFrom, &doubleTo, &halfTo, &noTo); err != nil {
			return nil, err
		}
		t, ok := domain.ParsePokemonType(name)
		if !ok {
			continue
		}
		out = append(out, domain.TypeRelations{
			Type:             t,
			DoubleDamageFrom: toTypeSet(doubleFrom),
			HalfDamageFrom:   toTypeSet(halfFrom),
			NoDamageFrom:     toTypeSet(noFrom),
			DoubleDamageTo:   toTypeSet(doubleTo),
			HalfDamageTo:     toTypeSet(halfTo),
			NoDamageTo:       toTypeSet(noTo),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PgTypeRepository) Upsert(ctx context.Context, rel domain.TypeRelations) error {
	const query = `
		INSERT INTO types (type_id, name, double_damage_from, half_damage_from, no_damage_from, double_damage_to, half_damage_to, no_damage_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name)
		DO UPDATE SET
			double_damage_from = EXCLUDED.double_damage_from,
			half_damage_from = EXCLUDED.half_damage_from,
			no_damage_from = EXCLUDED.no_damage_from,
			double_damage_to = EXCLUDED.double_damage_to,
			half_damage_to = EXCLUDED.half_damage_to,
			no_damage_to = EXCLUDED.no_damage_to
	`
	_, err := r.pool.Exec(ctx, query,
		int(rel.Type),
		rel.Type.String(),
		domain.TypeNames(rel.DoubleDamageFrom.Slice()),
		domain.TypeNames(rel.HalfDamageFrom.Slice()),
		domain.TypeNames(rel.NoDamageFrom.Slice()),
		domain.TypeNames(rel.DoubleDamageTo.Slice()),
		domain.TypeNames(rel.HalfDamageTo.Slice()),
		domain.TypeNames(rel.NoDamageTo.Slice()),
	)
	return err
}

func toTypeSet(names []string) domain.TypeSet {
	var s domain.TypeSet
	for _, n := range names {
		if t, ok := domain.ParsePokemonType(n); ok {
			s.Add(t)
		}
	}
	return s
}
