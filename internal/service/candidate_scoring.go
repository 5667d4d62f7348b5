package service

import (
	"fmt"
	"strings"

	"pokebuilder/internal/domain"
)

const (
	baselineScore = 50.0

	resistBonusPerWeakness = 10
	immuneBonusPerWeakness = 15
	sharedWeaknessPenalty  = 7
	newWeaknessPenalty     = 5

	newCoverageBonus  = 5
	noCoveragePenalty = 10

	twoNewTypesBonus = 30
	oneNewTypeBonus  = 20
	noNewTypePenalty = 10
	dualTypeBonus    = 10

	lowStatThreshold      = 80
	statImprovementMargin = 15
	offenseSkewMargin     = 15
	offenseBalanceBonus   = 10
	defenseSkewMargin     = 15
	defenseCandidateEdge  = 10
	defenseBalanceBonus   = 7
	highTotalThreshold    = 520
	highTotalBonus        = 5
)

// DefensiveScore compara el perfil neto del candidato con las debilidades netas del equipo.
func DefensiveScore(candidate domain.NetDefense, profile domain.TeamProfile) domain.ScoreResult {
	score := baselineScore
	var pros, cons uniqueStrings

	for _, t := range candidate.Resistances.Slice() {
		if count := profile.Weaknesses.Get(t); count > 0 {
			score += float64(count * resistBonusPerWeakness)
			pros.add(fmt.Sprintf("Resists %s, a team weakness", DisplayName(t.String())))
		}
	}
	for _, t := range candidate.Immunities.Slice() {
		if count := profile.Weaknesses.Get(t); count > 0 {
			score += float64(count * immuneBonusPerWeakness)
			pros.add(fmt.Sprintf("Immune to %s, a critical team weakness", DisplayName(t.String())))
		}
	}
	for _, t := range candidate.Weaknesses.Slice() {
		if profile.Immunities.Has(t) {
			continue
		}
		if count := profile.Weaknesses.Get(t); count > 0 {
			score -= float64(count * sharedWeaknessPenalty)
			cons.add(fmt.Sprintf("Shares the %s weakness", DisplayName(t.String())))
		} else {
			score -= newWeaknessPenalty
			cons.add(fmt.Sprintf("Adds a new weakness to %s", DisplayName(t.String())))
		}
	}

	return domain.ScoreResult{Score: clampScore(score), Pros: pros.list(), Cons: cons.list()}
}

// OffensiveScore premia los tipos que el candidato golpea súper-eficazmente y el equipo aún no.
func OffensiveScore(coverage domain.TypeSet, profile domain.TeamProfile) domain.ScoreResult {
	score := baselineScore
	res := domain.ScoreResult{Pros: []string{}, Cons: []string{}}

	var fresh []string
	for _, t := range coverage.Slice() {
		if !profile.OffensiveTypes.Has(t) {
			fresh = append(fresh, DisplayName(t.String()))
		}
	}

	if len(fresh) > 0 {
		score += float64(len(fresh) * newCoverageBonus)
		res.Pros = append(res.Pros, "Covers new types offensively: "+strings.Join(fresh, ", "))
	} else {
		score -= noCoveragePenalty
		res.Cons = append(res.Cons, "Adds no new super-effective coverage")
	}

	res.Score = clampScore(score)
	return res
}

// DiversityScore premia tipos defensivos que el equipo no tiene.
func DiversityScore(candidate domain.Pokemon, profile domain.TeamProfile) domain.ScoreResult {
	score := baselineScore
	res := domain.ScoreResult{Pros: []string{}, Cons: []string{}}

	var fresh []string
	for _, t := range candidate.Types {
		if !profile.PresentTypes.Has(t) {
			fresh = append(fresh, DisplayName(t.String()))
		}
	}

	switch len(fresh) {
	case 2:
		score += twoNewTypesBonus
		res.Pros = append(res.Pros, "Adds two new defensive types: "+strings.Join(fresh, " and "))
	case 1:
		score += oneNewTypeBonus
		res.Pros = append(res.Pros, "Adds a new defensive type: "+fresh[0])
	case 0:
		score -= noNewTypePenalty
		res.Cons = append(res.Cons, "Defensive types already present on the team")
	}

	if candidate.IsDualType() {
		score += dualTypeBonus
		res.Pros = append(res.Pros, "Dual typing adds defensive versatility")
	}

	res.Score = clampScore(score)
	return res
}

// StatsScore busca compensar estadísticas bajas y desequilibrios físico/especial.
// Con el equipo vacío devuelve la puntuación neutral. Nunca genera avisos.
func StatsScore(candidate domain.Pokemon, profile domain.TeamProfile) domain.ScoreResult {
	res := domain.ScoreResult{Score: baselineScore, Pros: []string{}, Cons: []string{}}
	if !hasStatData(profile.AvgStats) {
		return res
	}

	score := baselineScore
	avg := profile.AvgStats
	cs := candidate.Stats

	for _, stat := range domain.AllStats {
		teamAvg, ok := avg[stat]
		if !ok || teamAvg >= lowStatThreshold {
			continue
		}
		value := float64(cs.Get(stat))
		if value > teamAvg+statImprovementMargin {
			score += (value - teamAvg) / 10
			res.Pros = append(res.Pros, fmt.Sprintf("Improves %s (%d) over the team average (%.0f)", stat.Label(), cs.Get(stat), teamAvg))
		}
	}

	avgAtk, avgSpA := avg[domain.StatAttack], avg[domain.StatSpecialAttack]
	atk, spa := float64(cs.Attack), float64(cs.SpecialAttack)
	if avgAtk > avgSpA+offenseSkewMargin && spa > atk+offenseSkewMargin {
		score += offenseBalanceBonus
		res.Pros = append(res.Pros, "Balances the team with a special attacker")
	} else if avgSpA > avgAtk+offenseSkewMargin && atk > spa+offenseSkewMargin {
		score += offenseBalanceBonus
		res.Pros = append(res.Pros, "Balances the team with a physical attacker")
	}

	avgDef, avgSpD := avg[domain.StatDefense], avg[domain.StatSpecialDefense]
	def, spd := float64(cs.Defense), float64(cs.SpecialDefense)
	if avgDef > avgSpD+defenseSkewMargin && spd > def+defenseCandidateEdge {
		score += defenseBalanceBonus
		res.Pros = append(res.Pros, "Balances defenses with more special defense")
	} else if avgSpD > avgDef+defenseSkewMargin && def > spd+defenseCandidateEdge {
		score += defenseBalanceBonus
		res.Pros = append(res.Pros, "Balances defenses with more physical defense")
	}

	if total := cs.Total(); total > highTotalThreshold {
		score += highTotalBonus
		res.Pros = append(res.Pros, fmt.Sprintf("High base stat total (%d)", total))
	}

	res.Score = clampScore(score)
	return res
}

func hasStatData(avg map[domain.Stat]float64) bool {
	for _, v := range avg {
		if v != 0 {
			return true
		}
	}
	return false
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// uniqueStrings conserva el orden de inserción descartando repetidos.
type uniqueStrings struct {
	seen  map[string]struct{}
	items []string
}

func (u *uniqueStrings) add(s string) {
	if u.seen == nil {
		u.seen = make(map[string]struct{})
	}
	if _, ok := u.seen[s]; ok {
		return
	}
	u.seen[s] = struct{}{}
	u.items = append(u.items, s)
}

func (u *uniqueStrings) list() []string {
	if u.items == nil {
		return []string{}
	}
	return u.items
}
