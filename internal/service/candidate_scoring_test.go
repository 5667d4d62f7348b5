package service

import (
	"reflect"
	"testing"

	"pokebuilder/internal/domain"
)

func TestDefensiveScore(t *testing.T) {
	var profile domain.TeamProfile
	profile.Weaknesses[domain.TypeGround] = 2
	profile.Weaknesses[domain.TypeIce] = 1
	profile.Weaknesses[domain.TypeFire] = 1
	profile.Immunities.Add(domain.TypeElectric)

	candidate := domain.NetDefense{
		Resistances: domain.NewTypeSet(domain.TypeFire),
		Immunities:  domain.NewTypeSet(domain.TypeGround),
		Weaknesses:  domain.NewTypeSet(domain.TypeIce, domain.TypeElectric, domain.TypeRock),
	}

	res := DefensiveScore(candidate, profile)
	if res.Score != 78 {
		t.Fatalf("score = %v, want 78", res.Score)
	}
	wantPros := []string{"Resists Fire, a team weakness", "Immune to Ground, a critical team weakness"}
	if !reflect.DeepEqual(res.Pros, wantPros) {
		t.Fatalf("pros = %v, want %v", res.Pros, wantPros)
	}
	wantCons := []string{"Shares the Ice weakness", "Adds a new weakness to Rock"}
	if !reflect.DeepEqual(res.Cons, wantCons) {
		t.Fatalf("cons = %v, want %v", res.Cons, wantCons)
	}
}

func TestDefensiveScoreClamped(t *testing.T) {
	var profile domain.TeamProfile
	var weak domain.TypeSet
	for _, typ := range domain.AllTypes() {
		profile.Weaknesses[typ] = 3
		weak.Add(typ)
	}
	res := DefensiveScore(domain.NetDefense{Weaknesses: weak}, profile)
	if res.Score != 0 {
		t.Fatalf("score = %v, want 0", res.Score)
	}

	var resist domain.TypeSet
	for _, typ := range domain.AllTypes() {
		resist.Add(typ)
	}
	res = DefensiveScore(domain.NetDefense{Resistances: resist}, profile)
	if res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
}

func TestOffensiveScore(t *testing.T) {
	var profile domain.TeamProfile
	profile.OffensiveTypes = domain.NewTypeSet(domain.TypeGrass, domain.TypeBug)

	res := OffensiveScore(domain.NewTypeSet(domain.TypeGrass, domain.TypeIce, domain.TypeSteel), profile)
	if res.Score != 60 {
		t.Fatalf("score = %v, want 60", res.Score)
	}
	if want := []string{"Covers new types offensively: Ice, Steel"}; !reflect.DeepEqual(res.Pros, want) {
		t.Fatalf("pros = %v, want %v", res.Pros, want)
	}

	res = OffensiveScore(domain.NewTypeSet(domain.TypeGrass), profile)
	if res.Score != 40 || len(res.Cons) != 1 || len(res.Pros) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDiversityScore(t *testing.T) {
	var profile domain.TeamProfile
	profile.PresentTypes = domain.NewTypeSet(domain.TypeFire, domain.TypeWater)

	tests := []struct {
		name  string
		types []domain.PokemonType
		want  float64
		pros  int
		cons  int
	}{
		{"two new types", []domain.PokemonType{domain.TypeDragon, domain.TypeFlying}, 90, 2, 0},
		{"one new type dual", []domain.PokemonType{domain.TypeWater, domain.TypeGround}, 80, 2, 0},
		{"one new type", []domain.PokemonType{domain.TypeGrass}, 70, 1, 0},
		{"no new type", []domain.PokemonType{domain.TypeFire}, 40, 0, 1},
		{"no new type dual", []domain.PokemonType{domain.TypeWater, domain.TypeFire}, 50, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DiversityScore(domain.Pokemon{Types: tt.types}, profile)
			if res.Score != tt.want {
				t.Fatalf("score = %v, want %v", res.Score, tt.want)
			}
			if len(res.Pros) != tt.pros || len(res.Cons) != tt.cons {
				t.Fatalf("pros=%v cons=%v", res.Pros, res.Cons)
			}
		})
	}
}

func TestStatsScore(t *testing.T) {
	profile := domain.TeamProfile{AvgStats: map[domain.Stat]float64{
		domain.StatHP:             60,
		domain.StatAttack:         100,
		domain.StatDefense:        60,
		domain.StatSpecialAttack:  60,
		domain.StatSpecialDefense: 60,
		domain.StatSpeed:          60,
	}}
	candidate := domain.Pokemon{Stats: domain.Stats{HP: 60, Attack: 50, Defense: 60, SpecialAttack: 100, SpecialDefense: 60, Speed: 90}}

	res := StatsScore(candidate, profile)
	if res.Score != 67 {
		t.Fatalf("score = %v, want 67", res.Score)
	}
	wantPros := []string{
		"Improves Special Attack (100) over the team average (60)",
		"Improves Speed (90) over the team average (60)",
		"Balances the team with a special attacker",
	}
	if !reflect.DeepEqual(res.Pros, wantPros) {
		t.Fatalf("pros = %v, want %v", res.Pros, wantPros)
	}
	if len(res.Cons) != 0 {
		t.Fatalf("stats score never warns, got %v", res.Cons)
	}
}

func TestStatsScoreDefenseBalanceAndTotal(t *testing.T) {
	profile := domain.TeamProfile{AvgStats: map[domain.Stat]float64{
		domain.StatHP:             90,
		domain.StatAttack:         90,
		domain.StatDefense:        110,
		domain.StatSpecialAttack:  90,
		domain.StatSpecialDefense: 85,
		domain.StatSpeed:          90,
	}}
	candidate := domain.Pokemon{Stats: domain.Stats{HP: 100, Attack: 90, Defense: 80, SpecialAttack: 90, SpecialDefense: 120, Speed: 100}}

	res := StatsScore(candidate, profile)
	// 50 + 7 (defensa especial) + 5 (total 580)
	if res.Score != 62 {
		t.Fatalf("score = %v, want 62", res.Score)
	}
	wantPros := []string{"Balances defenses with more special defense", "High base stat total (580)"}
	if !reflect.DeepEqual(res.Pros, wantPros) {
		t.Fatalf("pros = %v, want %v", res.Pros, wantPros)
	}
}

func TestStatsScoreNoData(t *testing.T) {
	res := StatsScore(charizard, domain.TeamProfile{AvgStats: map[domain.Stat]float64{}})
	if res.Score != 50 || len(res.Pros) != 0 || len(res.Cons) != 0 {
		t.Fatalf("expected neutral score, got %+v", res)
	}
}
