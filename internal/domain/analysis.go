package domain

// TeamProfile es el resumen agregado de un equipo. Se recalcula en cada análisis.
type TeamProfile struct {
	// Weaknesses guarda el déficit neto (debilidades crudas - resistencias crudas), solo positivos.
	Weaknesses     TypeCounter      `json:"weaknesses"`
	Resistances    TypeCounter      `json:"resistances"`
	Immunities     TypeSet          `json:"immunities"`
	OffensiveTypes TypeSet          `json:"type_coverage"`
	PresentTypes   TypeSet          `json:"present_types"`
	AvgStats       map[Stat]float64 `json:"avg_stats"`
	TotalMembers   int              `json:"team_size"`
}

// NetDefense es el perfil defensivo combinado de un Pokémon (uno o dos tipos).
type NetDefense struct {
	Weaknesses  TypeSet `json:"weaknesses"`
	Resistances TypeSet `json:"resistances"`
	Immunities  TypeSet `json:"immunities"`
}

// ScoreResult es la salida de cada sub-puntuación.
type ScoreResult struct {
	Score float64
	Pros  []string
	Cons  []string
}

// Recommendation es un candidato puntuado.
type Recommendation struct {
	Pokemon        Pokemon  `json:"pokemon"`
	Score          float64  `json:"score"`
	DefensiveScore float64  `json:"defensive_score"`
	OffensiveScore float64  `json:"offensive_score"`
	DiversityScore float64  `json:"diversity_score"`
	StatsScore     float64  `json:"stats_score"`
	Pros           []string `json:"reasoning"`
	Cons           []string `json:"warnings"`
}

// TypeExposure detalla cómo afecta un tipo atacante a los miembros del equipo.
type TypeExposure struct {
	WeakMembers   int     `json:"weak_members"`
	ResistMembers int     `json:"resist_members"`
	ImmuneMembers int     `json:"immune_members"`
	MaxMultiplier float64 `json:"max_multiplier"`
}

// Net es la exposición neta: miembros débiles menos los que resisten o son inmunes.
func (e TypeExposure) Net() int {
	return e.WeakMembers - e.ResistMembers - e.ImmuneMembers
}

// Vulnerability resume el tipo atacante más peligroso para un equipo.
type Vulnerability struct {
	MostVulnerableType string                  `json:"most_vulnerable_type"`
	MaxMultiplier      float64                 `json:"max_multiplier"`
	IsBalanced         bool                    `json:"is_balanced"`
	Details            map[string]TypeExposure `json:"vulnerability_details"`
}
