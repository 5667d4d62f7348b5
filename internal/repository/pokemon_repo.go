package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pokebuilder/internal/domain"
)

type PokemonRepository interface {
	GetByIDs(ctx context.Context, ids []int) ([]domain.Pokemon, error)
	ListAvailable(ctx context.Context, limit int, excludeBanned bool) ([]domain.Pokemon, error)
	GetDetail(ctx context.Context, id int) (domain.PokemonDetail, error)
	Search(ctx context.Context, filter PokemonFilter) (SearchResult, error)
	Upsert(ctx context.Context, p domain.PokemonDetail) error
	SetBanned(ctx context.Context, ids []int, banned bool) (int64, error)
}

// StatRange filtra una estadística por mínimo y/o máximo (inclusivos).
type StatRange struct {
	Min *int
	Max *int
}

// PokemonFilter agrupa los predicados de búsqueda: prefijo, tipos, rangos y orden.
type PokemonFilter struct {
	Query         string
	Types         []domain.PokemonType
	StatRanges    map[domain.Stat]StatRange
	ExcludeBanned bool
	SortField     SortField
	Descending    bool
	Limit         int
	Offset        int
}

// SortField es una columna permitida para ordenar.
type SortField string

const (
	SortByID   SortField = "pokedex_id"
	SortByName SortField = "name"
)

// SortFieldForStat devuelve la columna de una estadística.
func SortFieldForStat(stat domain.Stat) SortField {
	return SortField(stat)
}

type SearchResult struct {
	Total   int              `json:"total"`
	Results []domain.Pokemon `json:"results"`
}

type PgPokemonRepository struct {
	pool *pgxpool.Pool
}

func NewPgPokemonRepository(pool *pgxpool.Pool) *PgPokemonRepository {
	return &PgPokemonRepository{pool: pool}
}

const pokemonColumns = `pokedex_id, name, types, hp, attack, defense, special_attack, special_defense, speed, is_banned`

// GetByIDs devuelve los Pokémon en el orden pedido; los ids inexistentes se omiten.
func (r *PgPokemonRepository) GetByIDs(ctx context.Context, ids []int) ([]domain.Pokemon, error) {
	if len(ids) == 0 {
		return []domain.Pokemon{}, nil
	}
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE pokedex_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	found, err := collectPokemon(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]domain.Pokemon, len(found))
	for _, p := range found {
		byID[p.PokedexID] = p
	}
	out := make([]domain.Pokemon, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PgPokemonRepository) ListAvailable(ctx context.Context, limit int, excludeBanned bool) ([]domain.Pokemon, error) {
	query := `SELECT ` + pokemonColumns + ` FROM pokemon WHERE ($1 = false OR is_banned = false) ORDER BY pokedex_id LIMIT $2`
	rows, err := r.pool.Query(ctx, query, excludeBanned, limit)
	if err != nil {
		return nil, err
	}
	return collectPokemon(rows)
}

func (r *PgPokemonRepository) GetDetail(ctx context.Context, id int) (domain.PokemonDetail, error) {
	query := `SELECT ` + pokemonColumns + `, abilities, moves_pool FROM pokemon WHERE pokedex_id = $1`

	var (
		d     domain.PokemonDetail
		types []string
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.PokedexID,
		&d.Name,
		&types,
		&d.Stats.HP,
		&d.Stats.Attack,
		&d.Stats.Defense,
		&d.Stats.SpecialAttack,
		&d.Stats.SpecialDefense,
		&d.Stats.Speed,
		&d.IsBanned,
		&d.Abilities,
		&d.MovesPool,
	)
	if err != nil {
		return domain.PokemonDetail{}, err
	}
	d.Types = domain.ParsePokemonTypes(types)
	if d.Abilities == nil {
		d.Abilities = []domain.Ability{}
	}
	if d.MovesPool == nil {
		d.MovesPool = []domain.Move{}
	}
	return d, nil
}

func (r *PgPokemonRepository) Search(ctx context.Context, filter PokemonFilter) (SearchResult, error) {
	query, args := buildSearchQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return SearchResult{}, err
	}
	defer rows.Close()

	res := SearchResult{Results: []domain.Pokemon{}}
	for rows.Next() {
		var (
			p     domain.Pokemon
			types []string
		)
		if err := rows.Scan(
			&p.PokedexID,
			&p.Name,
			&types,
			&p.Stats.HP,
			&p.Stats.Attack,
			&p.Stats.Defense,
			&p.Stats.SpecialAttack,
			&p.Stats.SpecialDefense,
			&p.Stats.Speed,
			&p.IsBanned,
			&res.Total,
		); err != nil {
			return SearchResult{}, err
		}
		p.Types = domain.ParsePokemonTypes(types)
		res.Results = append(res.Results, p)
	}
	if err := rows.Err(); err != nil {
		return SearchResult{}, err
	}

	if len(res.Results) == 0 && filter.Offset > 0 {
		countQuery, countArgs := buildCountQuery(filter)
		if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&res.Total); err != nil {
			return SearchResult{}, fmt.Errorf("count search results: %w", err)
		}
	}
	return res, nil
}

func (r *PgPokemonRepository) Upsert(ctx context.Context, p domain.PokemonDetail) error {
	const query = `
		INSERT INTO pokemon (pokedex_id, name, types, hp, attack, defense, special_attack, special_defense, speed, abilities, moves_pool, is_banned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (pokedex_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			types = EXCLUDED.types,
			hp = EXCLUDED.hp,
			attack = EXCLUDED.attack,
			defense = EXCLUDED.defense,
			special_attack = EXCLUDED.special_attack,
			special_defense = EXCLUDED.special_defense,
			speed = EXCLUDED.speed,
			abilities = EXCLUDED.abilities,
			moves_pool = EXCLUDED.moves_pool
	`
	_, err := r.pool.Exec(ctx, query,
		p.PokedexID,
		strings.ToLower(p.Name),
		domain.TypeNames(p.Types),
		p.Stats.HP,
		p.Stats.Attack,
		p.Stats.Defense,
		p.Stats.SpecialAttack,
		p.Stats.SpecialDefense,
		p.Stats.Speed,
		p.Abilities,
		p.MovesPool,
		p.IsBanned,
	)
	return err
}

func (r *PgPokemonRepository) SetBanned(ctx context.Context, ids []int, banned bool) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE pokemon SET is_banned = $1 WHERE pokedex_id = ANY($2)`, banned, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectPokemon(rows pgx.Rows) ([]domain.Pokemon, error) {
	defer rows.Close()

	out := []domain.Pokemon{}
	for rows.Next() {
		var (
			p     domain.Pokemon
			types []string
		)
		if err := rows.Scan(
			&p.PokedexID,
			&p.Name,
			&types,
			&p.Stats.HP,
			&p.Stats.Attack,
			&p.Stats.Defense,
			&p.Stats.SpecialAttack,
			&p.Stats.SpecialDefense,
			&p.Stats.Speed,
			&p.IsBanned,
		); err != nil {
			return nil, err
		}
		p.Types = domain.ParsePokemonTypes(types)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildSearchWhere arma la cláusula WHERE y sus argumentos posicionales.
func buildSearchWhere(f PokemonFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		cond := "name LIKE " + arg(escapeLike(q)+"%")
		if isDigits(q) {
			cond = "(" + cond + " OR pokedex_id::text LIKE " + arg(q+"%") + ")"
		}
		where = append(where, cond)
	}
	if len(f.Types) > 0 {
		where = append(where, "types && "+arg(domain.TypeNames(f.Types)))
	}
	if f.ExcludeBanned {
		where = append(where, "is_banned = false")
	}
	for _, stat := range domain.AllStats {
		rng, ok := f.StatRanges[stat]
		if !ok {
			continue
		}
		if rng.Min != nil {
			where = append(where, string(stat)+" >= "+arg(*rng.Min))
		}
		if rng.Max != nil {
			where = append(where, string(stat)+" <= "+arg(*rng.Max))
		}
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// buildSearchQuery arma el SELECT paginado. Las columnas de orden provienen de
// una lista cerrada, nunca del input.
func buildSearchQuery(f PokemonFilter) (string, []any) {
	where, args := buildSearchWhere(f)

	var b strings.Builder
	b.WriteString("SELECT " + pokemonColumns + ", count(*) OVER() AS total FROM pokemon")
	b.WriteString(where)

	sortField := SortByID
	if isAllowedSort(f.SortField) {
		sortField = f.SortField
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s", sortField, dir)
	if sortField != SortByID {
		b.WriteString(", pokedex_id ASC")
	}
	args = append(args, f.Limit, f.Offset)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// buildCountQuery cuenta las coincidencias sin paginar. Se usa cuando el offset
// deja la página vacía y la ventana count(*) OVER() no devuelve filas.
func buildCountQuery(f PokemonFilter) (string, []any) {
	where, args := buildSearchWhere(f)
	return "SELECT count(*) FROM pokemon" + where, args
}

func isAllowedSort(f SortField) bool {
	if f == SortByID || f == SortByName {
		return true
	}
	for _, stat := range domain.AllStats {
		if f == SortField(stat) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
