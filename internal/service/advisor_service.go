package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pokebuilder/internal/domain"
	"pokebuilder/internal/repository"
)

// AdvisorOptions ajusta los límites de consulta del servicio.
type AdvisorOptions struct {
	DefaultTopN   int
	PoolLimit     int
	SpriteBaseURL string
}

// AdvisorService conecta el motor de recomendación con el almacenamiento.
type AdvisorService struct {
	engine  *RecommendationEngine
	pokemon repository.PokemonRepository
	cache   RecommendationCache
	opts    AdvisorOptions
	logger  *zap.Logger
}

func NewAdvisorService(
	engine *RecommendationEngine,
	pokemon repository.PokemonRepository,
	cache RecommendationCache,
	opts AdvisorOptions,
	logger *zap.Logger,
) *AdvisorService {
	if opts.DefaultTopN <= 0 {
		opts.DefaultTopN = 5
	}
	if opts.PoolLimit <= 0 {
		opts.PoolLimit = 1000
	}
	if opts.SpriteBaseURL == "" {
		opts.SpriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites"
	}
	return &AdvisorService{
		engine:  engine,
		pokemon: pokemon,
		cache:   cache,
		opts:    opts,
		logger:  logger,
	}
}

// ScoreBreakdown es el detalle de sub-puntuaciones que se expone en la API.
type ScoreBreakdown struct {
	Defensive float64 `json:"defensive"`
	Offensive float64 `json:"offensive"`
	Diversity float64 `json:"diversity"`
	Stats     float64 `json:"stats"`
}

// RecommendationView es la forma serializada de una recomendación.
type RecommendationView struct {
	PokedexID   int            `json:"pokedex_id"`
	Name        string         `json:"name"`
	Types       []string       `json:"types"`
	SpriteURL   string         `json:"sprite_url"`
	Stats       domain.Stats   `json:"stats"`
	Score       float64        `json:"score"`
	Scores      ScoreBreakdown `json:"scores"`
	Reasoning   []string       `json:"reasoning"`
	Warnings    []string       `json:"warnings"`
	Explanation string         `json:"explanation"`
}

// AIStatus describe si el motor está listo.
type AIStatus struct {
	Enabled            bool `json:"enabled"`
	ServiceInitialized bool `json:"service_initialized"`
	TypesLoaded        int  `json:"types_loaded"`
}

func (s *AdvisorService) Status() AIStatus {
	if s == nil || s.engine == nil {
		return AIStatus{}
	}
	return AIStatus{
		Enabled:            true,
		ServiceInitialized: true,
		TypesLoaded:        s.engine.Chart().Len(),
	}
}

// RecommendPokemon recomienda candidatos para el equipo. topN <= 0 usa el valor por defecto.
func (s *AdvisorService) RecommendPokemon(ctx context.Context, teamIDs []int, topN int) ([]RecommendationView, error) {
	if topN <= 0 {
		topN = s.opts.DefaultTopN
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, teamIDs, topN)
		if err != nil {
			s.logger.Warn("recommendation cache read failed", zap.Error(err))
		} else if ok {
			s.logger.Debug("recommendation cache hit", zap.Ints("team_ids", teamIDs))
			return cached, nil
		}
	}

	team, err := s.loadTeam(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	if len(team) >= MaxTeamSize {
		return []RecommendationView{}, nil
	}

	pool, err := s.pokemon.ListAvailable(ctx, s.opts.PoolLimit, true)
	if err != nil {
		return nil, fmt.Errorf("list candidate pool: %w", err)
	}
	s.warnUnknownTypes(pool)

	recs := s.engine.Recommend(team, pool, topN)
	views := make([]RecommendationView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, s.toView(rec))
	}

	s.logger.Info("recommendations generated",
		zap.Int("team_size", len(team)),
		zap.Int("pool_size", len(pool)),
		zap.Int("returned", len(views)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, teamIDs, topN, views); err != nil {
			s.logger.Warn("recommendation cache write failed", zap.Error(err))
		}
	}
	return views, nil
}

// AnalyzeTeam devuelve el perfil agregado del equipo.
func (s *AdvisorService) AnalyzeTeam(ctx context.Context, teamIDs []int) (domain.TeamProfile, error) {
	team, err := s.loadTeam(ctx, teamIDs)
	if err != nil {
		return domain.TeamProfile{}, err
	}
	return s.engine.AnalyzeTeam(team), nil
}

// TeamVulnerability devuelve el tipo atacante más peligroso para el equipo.
func (s *AdvisorService) TeamVulnerability(ctx context.Context, teamIDs []int) (domain.Vulnerability, error) {
	team, err := s.loadTeam(ctx, teamIDs)
	if err != nil {
		return domain.Vulnerability{}, err
	}
	return s.engine.TeamVulnerability(team), nil
}

func (s *AdvisorService) loadTeam(ctx context.Context, teamIDs []int) ([]domain.Pokemon, error) {
	team, err := s.pokemon.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("get team %v: %w", teamIDs, err)
	}
	if len(team) != len(teamIDs) {
		found := make(map[int]struct{}, len(team))
		for _, p := range team {
			found[p.PokedexID] = struct{}{}
		}
		for _, id := range teamIDs {
			if _, ok := found[id]; !ok {
				s.logger.Warn("team member not found", zap.Int("pokedex_id", id))
			}
		}
	}
	s.warnUnknownTypes(team)
	return team, nil
}

func (s *AdvisorService) warnUnknownTypes(list []domain.Pokemon) {
	for _, p := range list {
		for _, t := range p.Types {
			if !t.Known() {
				s.logger.Warn("pokemon has unknown type", zap.Int("pokedex_id", p.PokedexID), zap.String("name", p.Name))
				break
			}
		}
	}
}

func (s *AdvisorService) toView(rec domain.Recommendation) RecommendationView {
	return RecommendationView{
		PokedexID: rec.Pokemon.PokedexID,
		Name:      rec.Pokemon.Name,
		Types:     domain.TypeNames(rec.Pokemon.Types),
		SpriteURL: SpriteURL(s.opts.SpriteBaseURL, rec.Pokemon.PokedexID),
		Stats:     rec.Pokemon.Stats,
		Score:     round2(rec.Score),
		Scores: ScoreBreakdown{
			Defensive: round2(rec.DefensiveScore),
			Offensive: round2(rec.OffensiveScore),
			Diversity: round2(rec.DiversityScore),
			Stats:     round2(rec.StatsScore),
		},
		Reasoning:   rec.Pros,
		Warnings:    rec.Cons,
		Explanation: FormatRecommendationText(rec),
	}
}

// SpriteURL devuelve la imagen oficial de PokéAPI para un número de Pokédex.
func SpriteURL(base string, pokedexID int) string {
	return strings.TrimRight(base, "/") + "/pokemon/" + strconv.Itoa(pokedexID) + ".png"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemSpriteURL devuelve la imagen de un objeto a partir de su nombre.
func ItemSpriteURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/items/" + name + ".png"
}
