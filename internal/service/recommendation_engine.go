package service

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"pokebuilder/internal/domain"
)

const (
	// MaxTeamSize es el tamaño de un equipo completo.
	MaxTeamSize = 6

	WeightDefensive = 0.30
	WeightOffensive = 0.20
	WeightDiversity = 0.20
	WeightStats     = 0.30
)

// RecommendationEngine analiza equipos y puntúa candidatos. Solo lee la tabla de
// tipos, por lo que una instancia se comparte entre todas las peticiones.
type RecommendationEngine struct {
	chart   *TypeChart
	workers int
}

// EngineOption ajusta la construcción del motor.
type EngineOption func(*RecommendationEngine)

// WithScoringWorkers limita cuántos candidatos se puntúan en paralelo.
func WithScoringWorkers(n int) EngineOption {
	return func(e *RecommendationEngine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func NewRecommendationEngine(chart *TypeChart, opts ...EngineOption) (*RecommendationEngine, error) {
	if chart == nil {
		return nil, ErrNilTypeChart
	}
	e := &RecommendationEngine{
		chart:   chart,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Chart expone la tabla de tipos (solo lectura).
func (e *RecommendationEngine) Chart() *TypeChart {
	return e.chart
}

// Multiplier calcula el daño relativo que recibe una combinación de tipos del atacante.
// Una inmunidad anula el resto de tipos.
func (e *RecommendationEngine) Multiplier(defending []domain.PokemonType, attacker domain.PokemonType) float64 {
	multiplier := 1.0
	for _, t := range defending {
		rel, ok := e.chart.Lookup(t)
		if !ok {
			continue
		}
		switch {
		case rel.DoubleDamageFrom.Has(attacker):
			multiplier *= 2
		case rel.HalfDamageFrom.Has(attacker):
			multiplier *= 0.5
		case rel.NoDamageFrom.Has(attacker):
			return 0
		}
	}
	return multiplier
}

// NetEffectiveness clasifica cada tipo atacante contra los tipos combinados del Pokémon.
// Los neutros (x1) no aparecen en ningún conjunto.
func (e *RecommendationEngine) NetEffectiveness(types []domain.PokemonType) domain.NetDefense {
	var net domain.NetDefense
	for _, attacker := range e.chart.Types() {
		m := e.Multiplier(types, attacker)
		switch {
		case m == 0:
			net.Immunities.Add(attacker)
		case m > 1:
			net.Weaknesses.Add(attacker)
		case m < 1:
			net.Resistances.Add(attacker)
		}
	}
	return net
}

// AnalyzeTeam agrega el perfil del equipo contando relaciones crudas por miembro y tipo.
// No compone los tipos de cada miembro como NetEffectiveness: mide cuántos miembros
// quedan expuestos a cada tipo atacante.
func (e *RecommendationEngine) AnalyzeTeam(team []domain.Pokemon) domain.TeamProfile {
	profile := domain.TeamProfile{
		AvgStats:     make(map[domain.Stat]float64),
		TotalMembers: len(team),
	}
	if len(team) == 0 {
		return profile
	}

	var rawWeak domain.TypeCounter
	for _, member := range team {
		for _, t := range member.Types {
			profile.PresentTypes.Add(t)

			rel, ok := e.chart.Lookup(t)
			if !ok {
				continue
			}
			for _, w := range rel.DoubleDamageFrom.Slice() {
				rawWeak.Inc(w)
			}
			for _, r := range rel.HalfDamageFrom.Slice() {
				profile.Resistances.Inc(r)
			}
			for _, i := range rel.NoDamageFrom.Slice() {
				profile.Immunities.Add(i)
			}
			for _, o := range rel.DoubleDamageTo.Slice() {
				profile.OffensiveTypes.Add(o)
			}
		}
	}

	for _, t := range e.chart.Types() {
		weak := rawWeak.Get(t)
		if weak == 0 || profile.Immunities.Has(t) {
			continue
		}
		if deficit := weak - profile.Resistances.Get(t); deficit > 0 {
			profile.Weaknesses[t] = deficit
		}
	}

	for _, stat := range domain.AllStats {
		total := 0
		for _, member := range team {
			total += member.Stats.Get(stat)
		}
		profile.AvgStats[stat] = float64(total) / float64(len(team))
	}

	return profile
}

// EvaluateCandidate puntúa un candidato contra un perfil ya calculado.
func (e *RecommendationEngine) EvaluateCandidate(candidate domain.Pokemon, profile domain.TeamProfile) domain.Recommendation {
	defensive := DefensiveScore(e.NetEffectiveness(candidate.Types), profile)
	offensive := OffensiveScore(e.offensiveCoverage(candidate.Types), profile)
	diversity := DiversityScore(candidate, profile)
	stats := StatsScore(candidate, profile)

	rec := domain.Recommendation{
		Pokemon:        candidate,
		DefensiveScore: defensive.Score,
		OffensiveScore: offensive.Score,
		DiversityScore: diversity.Score,
		StatsScore:     stats.Score,
		Pros:           []string{},
		Cons:           []string{},
	}
	for _, r := range []domain.ScoreResult{defensive, offensive, diversity, stats} {
		rec.Pros = append(rec.Pros, r.Pros...)
		rec.Cons = append(rec.Cons, r.Cons...)
	}
	rec.Score = BlendScores(rec.DefensiveScore, rec.OffensiveScore, rec.DiversityScore, rec.StatsScore)
	return rec
}

// BlendScores combina las cuatro sub-puntuaciones. No se vuelve a recortar.
func BlendScores(defensive, offensive, diversity, stats float64) float64 {
	return defensive*WeightDefensive +
		offensive*WeightOffensive +
		diversity*WeightDiversity +
		stats*WeightStats
}

// Recommend devuelve los topN candidatos del pool que mejor complementan el equipo.
// Un equipo completo no admite recomendaciones.
func (e *RecommendationEngine) Recommend(team []domain.Pokemon, pool []domain.Pokemon, topN int) []domain.Recommendation {
	if len(team) >= MaxTeamSize || topN <= 0 {
		return []domain.Recommendation{}
	}

	inTeam := make(map[int]struct{}, len(team))
	for _, p := range team {
		inTeam[p.PokedexID] = struct{}{}
	}
	candidates := make([]domain.Pokemon, 0, len(pool))
	for _, p := range pool {
		if _, ok := inTeam[p.PokedexID]; ok {
			continue
		}
		candidates = append(candidates, p)
	}

	profile := e.AnalyzeTeam(team)

	recs := make([]domain.Recommendation, len(candidates))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range candidates {
		g.Go(func() error {
			recs[i] = e.EvaluateCandidate(candidates[i], profile)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}

func (e *RecommendationEngine) offensiveCoverage(types []domain.PokemonType) domain.TypeSet {
	var coverage domain.TypeSet
	for _, t := range types {
		rel, ok := e.chart.Lookup(t)
		if !ok {
			continue
		}
		for _, o := range rel.DoubleDamageTo.Slice() {
			coverage.Add(o)
		}
	}
	return coverage
}
