package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pokebuilder/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/type/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"name": "ghost",
			"damage_relations": {
				"double_damage_from": [{"name": "ghost"}, {"name": "dark"}],
				"half_damage_from": [{"name": "poison"}, {"name": "bug"}],
				"no_damage_from": [{"name": "normal"}, {"name": "fighting"}],
				"double_damage_to": [{"name": "psychic"}, {"name": "ghost"}],
				"half_damage_to": [{"name": "dark"}],
				"no_damage_to": [{"name": "normal"}, {"name": "shadow"}]
			}
		}`))
	})
	mux.HandleFunc("/pokemon/6", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 6,
			"name": "charizard",
			"types": [{"slot": 2, "type": {"name": "flying"}}, {"slot": 1, "type": {"name": "fire"}}],
			"stats": [
				{"base_stat": 78, "stat": {"name": "hp"}},
				{"base_stat": 84, "stat": {"name": "attack"}},
				{"base_stat": 78, "stat": {"name": "defense"}},
				{"base_stat": 109, "stat": {"name": "special-attack"}},
				{"base_stat": 85, "stat": {"name": "special-defense"}},
				{"base_stat": 100, "stat": {"name": "speed"}}
			],
			"abilities": [{"ability": {"name": "blaze"}, "is_hidden": false}, {"ability": {"name": "solar-power"}, "is_hidden": true}],
			"moves": [{"move": {"name": "flamethrower"}, "version_group_details": [{"move_learn_method": {"name": "machine"}}, {"move_learn_method": {"name": "level-up"}}]}]
		}`))
	})
	mux.HandleFunc("/item/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 1,
			"name": "master-ball",
			"cost": 0,
			"category": {"name": "standard-balls"},
			"effect_entries": [
				{"short_effect": "Fängt jedes Pokémon.", "language": {"name": "de"}},
				{"short_effect": "Catches a wild Pokémon every time.", "language": {"name": "en"}}
			]
		}`))
	})
	mux.HandleFunc("/pokemon/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetType(t *testing.T) {
	c := NewHTTPClient(newTestServer(t).URL, nil)
	rel, err := c.GetType(context.Background(), "Ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel.Type != domain.TypeGhost {
		t.Fatalf("type = %v", rel.Type)
	}
	if !rel.NoDamageFrom.Has(domain.TypeNormal) || !rel.NoDamageFrom.Has(domain.TypeFighting) {
		t.Fatalf("immunities missing: %v", rel.NoDamageFrom.Slice())
	}
	if rel.NoDamageTo.Len() != 1 {
		t.Fatalf("unknown type names must be dropped, got %v", rel.NoDamageTo.Slice())
	}
}

func TestGetPokemon(t *testing.T) {
	c := NewHTTPClient(newTestServer(t).URL, nil)
	p, err := c.GetPokemon(context.Background(), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Types) != 2 || p.Types[0] != domain.TypeFire || p.Types[1] != domain.TypeFlying {
		t.Fatalf("types = %v", p.Types)
	}
	if p.Stats.SpecialAttack != 109 || p.Stats.Speed != 100 || p.Stats.Total() != 534 {
		t.Fatalf("stats = %+v", p.Stats)
	}
	if len(p.Abilities) != 2 || !p.Abilities[1].IsHidden {
		t.Fatalf("abilities = %+v", p.Abilities)
	}
	if len(p.MovesPool) != 1 || p.MovesPool[0].LearnMethod != "level-up" {
		t.Fatalf("moves = %+v", p.MovesPool)
	}
}

func TestGetItem(t *testing.T) {
	c := NewHTTPClient(newTestServer(t).URL, nil)
	item, err := c.GetItem(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Category != "standard-balls" || item.Effect != "Catches a wild Pokémon every time." {
		t.Fatalf("item = %+v", item)
	}
}

func TestErrors(t *testing.T) {
	c := NewHTTPClient(newTestServer(t).URL, nil)
	if _, err := c.GetPokemon(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.GetPokemon(context.Background(), 500); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected server error, got %v", err)
	}
}
