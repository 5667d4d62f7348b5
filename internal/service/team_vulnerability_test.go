package service

import (
	"testing"

	"pokebuilder/internal/domain"
)

func TestTeamVulnerability(t *testing.T) {
	e := newTestEngine(t)

	t.Run("empty team", func(t *testing.T) {
		v := e.TeamVulnerability(nil)
		if v.MostVulnerableType != "N/A" || !v.IsBalanced || v.MaxMultiplier != 0 || len(v.Details) != 0 {
			t.Fatalf("unexpected result %+v", v)
		}
	})

	t.Run("stacked flying weaknesses", func(t *testing.T) {
		v := e.TeamVulnerability([]domain.Pokemon{charizard, gyarados, moltres})
		if v.MostVulnerableType != "electric" {
			t.Fatalf("most vulnerable = %s, want electric", v.MostVulnerableType)
		}
		if v.MaxMultiplier != 4 {
			t.Fatalf("max multiplier = %v, want 4", v.MaxMultiplier)
		}
		if v.IsBalanced {
			t.Fatalf("team should not be balanced")
		}
		if len(v.Details) != domain.TypeCount {
			t.Fatalf("expected details for every type, got %d", len(v.Details))
		}
		if rock := v.Details["rock"]; rock.WeakMembers != 3 || rock.Net() != 3 {
			t.Fatalf("rock exposure = %+v", rock)
		}
		if ground := v.Details["ground"]; ground.ImmuneMembers != 3 || ground.MaxMultiplier != 0 {
			t.Fatalf("ground exposure = %+v", ground)
		}
	})

	t.Run("starters are balanced", func(t *testing.T) {
		v := e.TeamVulnerability([]domain.Pokemon{bulbasaur, charmander, squirtle})
		if !v.IsBalanced {
			t.Fatalf("expected balanced team, got %+v", v)
		}
	})
}
