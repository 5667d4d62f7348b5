package service

import "pokebuilder/internal/domain"

// vulnerabilityThreshold es la exposición neta a partir de la cual un equipo deja de estar equilibrado.
const vulnerabilityThreshold = 3

// TeamVulnerability busca el tipo atacante al que el equipo está más expuesto,
// componiendo los tipos de cada miembro igual que NetEffectiveness.
func (e *RecommendationEngine) TeamVulnerability(team []domain.Pokemon) domain.Vulnerability {
	v := domain.Vulnerability{
		MostVulnerableType: "N/A",
		IsBalanced:         true,
		Details:            make(map[string]domain.TypeExposure),
	}
	if len(team) == 0 {
		return v
	}

	var (
		worst     domain.TypeExposure
		worstType domain.PokemonType
		haveWorst bool
	)
	for _, attacker := range e.chart.Types() {
		var exp domain.TypeExposure
		for _, member := range team {
			m := e.Multiplier(member.Types, attacker)
			switch {
			case m == 0:
				exp.ImmuneMembers++
			case m > 1:
				exp.WeakMembers++
			case m < 1:
				exp.ResistMembers++
			}
			if m > exp.MaxMultiplier {
				exp.MaxMultiplier = m
			}
		}
		v.Details[attacker.String()] = exp

		if !haveWorst || exp.Net() > worst.Net() ||
			(exp.Net() == worst.Net() && exp.MaxMultiplier > worst.MaxMultiplier) {
			worst, worstType, haveWorst = exp, attacker, true
		}
	}

	v.MostVulnerableType = worstType.String()
	v.MaxMultiplier = worst.MaxMultiplier
	v.IsBalanced = worst.Net() < vulnerabilityThreshold
	return v
}
