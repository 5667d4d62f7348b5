package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pokebuilder/internal/domain"
	"pokebuilder/internal/repository"
	"pokebuilder/internal/service"
)

// PokemonHandler sirve el catálogo: búsqueda, detalle, habilidades, movimientos y objetos.
type PokemonHandler struct {
	logger     *zap.Logger
	pokemon    repository.PokemonRepository
	items      repository.ItemRepository
	spriteBase string
}

func NewPokemonHandler(
	logger *zap.Logger,
	pokemon repository.PokemonRepository,
	items repository.ItemRepository,
	spriteBase string,
) *PokemonHandler {
	return &PokemonHandler{
		logger:     logger,
		pokemon:    pokemon,
		items:      items,
		spriteBase: spriteBase,
	}
}

type pokemonView struct {
	PokedexID int          `json:"pokedex_id"`
	Name      string       `json:"name"`
	Types     []string     `json:"types"`
	SpriteURL string       `json:"sprite_url"`
	Stats     domain.Stats `json:"stats"`
	IsBanned  bool         `json:"is_banned"`
}

type itemView struct {
	domain.Item
	SpriteURL string `json:"sprite_url"`
}

type searchQuery struct {
	Q             string   `form:"q"`
	Stat          string   `form:"stat"`
	Order         string   `form:"order" binding:"omitempty,oneof=asc desc ASC DESC"`
	Types         []string `form:"types" binding:"dive,pokemon_type"`
	ExcludeBanned bool     `form:"exclude_banned"`
	Limit         int      `form:"limit,default=50" binding:"min=0,max=1000"`
	Offset        int      `form:"offset" binding:"min=0"`

	HPMin             *int `form:"hp_min"`
	HPMax             *int `form:"hp_max"`
	AttackMin         *int `form:"attack_min"`
	AttackMax         *int `form:"attack_max"`
	DefenseMin        *int `form:"defense_min"`
	DefenseMax        *int `form:"defense_max"`
	SpecialAttackMin  *int `form:"special_attack_min"`
	SpecialAttackMax  *int `form:"special_attack_max"`
	SpecialDefenseMin *int `form:"special_defense_min"`
	SpecialDefenseMax *int `form:"special_defense_max"`
	SpeedMin          *int `form:"speed_min"`
	SpeedMax          *int `form:"speed_max"`
}

func (q searchQuery) statRanges() map[domain.Stat]repository.StatRange {
	all := map[domain.Stat]repository.StatRange{
		domain.StatHP:             {Min: q.HPMin, Max: q.HPMax},
		domain.StatAttack:         {Min: q.AttackMin, Max: q.AttackMax},
		domain.StatDefense:        {Min: q.DefenseMin, Max: q.DefenseMax},
		domain.StatSpecialAttack:  {Min: q.SpecialAttackMin, Max: q.SpecialAttackMax},
		domain.StatSpecialDefense: {Min: q.SpecialDefenseMin, Max: q.SpecialDefenseMax},
		domain.StatSpeed:          {Min: q.SpeedMin, Max: q.SpeedMax},
	}
	out := make(map[domain.Stat]repository.StatRange)
	for stat, rng := range all {
		if rng.Min != nil || rng.Max != nil {
			out[stat] = rng
		}
	}
	return out
}

// sortFieldFor resuelve el parámetro stat: id, nombre o una estadística.
func sortFieldFor(stat string) (repository.SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(stat)) {
	case "id", "pokedex_id":
		return repository.SortByID, true
	case "name":
		return repository.SortByName, true
	}
	s, ok := domain.ParseStat(stat)
	if !ok {
		return "", false
	}
	return repository.SortFieldForStat(s), true
}

// Search maneja GET /api/v1/pokemon/search.
func (h *PokemonHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("invalid search request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	filter := repository.PokemonFilter{
		Query:         q.Q,
		Types:         domain.ParsePokemonTypes(q.Types),
		StatRanges:    q.statRanges(),
		ExcludeBanned: q.ExcludeBanned,
		SortField:     repository.SortByID,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}
	if q.Stat != "" {
		field, ok := sortFieldFor(q.Stat)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stat, use id, name, hp, attack, defense, special_attack, special_defense or speed"})
			return
		}
		filter.SortField = field
		filter.Descending = !strings.EqualFold(q.Order, "asc")
	}

	res, err := h.pokemon.Search(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("search pokemon failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search pokemon"})
		return
	}

	results := make([]pokemonView, 0, len(res.Results))
	for _, p := range res.Results {
		results = append(results, h.toView(p))
	}
	c.JSON(http.StatusOK, gin.H{"total": res.Total, "results": results})
}

// GetDetail maneja GET /api/v1/pokemon/:id.
func (h *PokemonHandler) GetDetail(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pokemon":    detail,
		"sprite_url": service.SpriteURL(h.spriteBase, detail.PokedexID),
	})
}

// ListAbilities maneja GET /api/v1/pokemon/:id/abilities?q=
func (h *PokemonHandler) ListAbilities(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}
	needle := strings.ToLower(c.Query("q"))
	out := make([]domain.Ability, 0, len(detail.Abilities))
	for _, a := range detail.Abilities {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	c.JSON(http.StatusOK, out)
}

// ListMoves maneja GET /api/v1/pokemon/:id/moves?q=
func (h *PokemonHandler) ListMoves(c *gin.Context) {
	detail, ok := h.loadDetail(c)
	if !ok {
		return
	}
	needle := strings.ToLower(c.Query("q"))
	out := make([]domain.Move, 0, len(detail.MovesPool))
	for _, m := range detail.MovesPool {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			out = append(out, m)
		}
	}
	c.JSON(http.StatusOK, out)
}

// SearchItems maneja GET /api/v1/items/search?q=
func (h *PokemonHandler) SearchItems(c *gin.Context) {
	var req struct {
		Q     string `form:"q" binding:"required"`
		Limit int    `form:"limit,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items, err := h.items.SearchByPrefix(c.Request.Context(), req.Q, req.Limit)
	if err != nil {
		h.logger.Error("search items failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search items"})
		return
	}
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{Item: it, SpriteURL: service.ItemSpriteURL(h.spriteBase, it.Name)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PokemonHandler) loadDetail(c *gin.Context) (domain.PokemonDetail, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pokedex id"})
		return domain.PokemonDetail{}, false
	}
	detail, err := h.pokemon.GetDetail(c.Request.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pokemon not found"})
		return domain.PokemonDetail{}, false
	}
	if err != nil {
		h.logger.Error("get pokemon failed", zap.Int("pokedex_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load pokemon"})
		return domain.PokemonDetail{}, false
	}
	return detail, true
}

func (h *PokemonHandler) toView(p domain.Pokemon) pokemonView {
	return pokemonView{
		PokedexID: p.PokedexID,
		Name:      service.DisplayName(p.Name),
		Types:     domain.TypeNames(p.Types),
		SpriteURL: service.SpriteURL(h.spriteBase, p.PokedexID),
		Stats:     p.Stats,
		IsBanned:  p.IsBanned,
	}
}
