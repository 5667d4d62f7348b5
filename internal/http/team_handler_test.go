package http

import (
	"net/http"
	"testing"
	"time"

	"pokebuilder/internal/domain"
)

func TestTeamHandlerSaveAndList(t *testing.T) {
	r, deps := setupRouter(t)

	rec := performRequest(r, http.MethodPost, "/api/v1/teams", map[string]any{
		"user_id":   "ash",
		"team_name": "Kanto",
		"format":    "gen9ou",
		"team_members": []map[string]any{
			{"base_pokemon": "pikachu", "tera_type": "Electric", "moves": []string{"thunderbolt"}, "evs": map[string]int{"speed": 252}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		TeamID  string `json:"team_id"`
	}
	decode(t, rec, &created)
	if !created.Success || created.Message != "team created" || created.TeamID == "" {
		t.Fatalf("unexpected body %+v", created)
	}
	if _, ok := deps.teams.teams[created.TeamID]; !ok {
		t.Fatalf("team not stored")
	}

	rec = performRequest(r, http.MethodGet, "/api/v1/teams/user/ash", nil)
	var teams []domain.Team
	decode(t, rec, &teams)
	if len(teams) != 1 || teams[0].Members[0].BasePokemon != "pikachu" {
		t.Fatalf("teams = %+v", teams)
	}
}

func TestTeamHandlerUpdatePreservesCreatedAt(t *testing.T) {
	r, deps := setupRouter(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	deps.teams.teams["t1"] = domain.Team{ID: "t1", UserID: "ash", Name: "Old", CreatedAt: created}

	rec := performRequest(r, http.MethodPost, "/api/v1/teams", map[string]any{
		"team_id":   "t1",
		"user_id":   "ash",
		"team_name": "New",
		"format":    "vgc",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	stored := deps.teams.teams["t1"]
	if stored.Name != "New" || !stored.CreatedAt.Equal(created) {
		t.Fatalf("unexpected stored team %+v", stored)
	}

	rec = performRequest(r, http.MethodPost, "/api/v1/teams", map[string]any{
		"team_id":   "t1",
		"user_id":   "gary",
		"team_name": "Stolen",
		"format":    "vgc",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestTeamHandlerSaveValidation(t *testing.T) {
	r, _ := setupRouter(t)
	member := map[string]any{"base_pokemon": "pikachu"}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"user_id": "ash", "format": "ou"}},
		{"unknown tera type", map[string]any{"user_id": "ash", "team_name": "x", "format": "ou", "team_members": []map[string]any{{"base_pokemon": "pikachu", "tera_type": "shadow"}}}},
		{"too many members", map[string]any{"user_id": "ash", "team_name": "x", "format": "ou", "team_members": []map[string]any{member, member, member, member, member, member, member}}},
		{"too many moves", map[string]any{"user_id": "ash", "team_name": "x", "format": "ou", "team_members": []map[string]any{{"base_pokemon": "pikachu", "moves": []string{"a", "b", "c", "d", "e"}}}}},
		{"ev out of range", map[string]any{"user_id": "ash", "team_name": "x", "format": "ou", "team_members": []map[string]any{{"base_pokemon": "pikachu", "evs": map[string]int{"hp": 300}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodPost, "/api/v1/teams", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestTeamHandlerDelete(t *testing.T) {
	r, deps := setupRouter(t)
	deps.teams.teams["t1"] = domain.Team{ID: "t1", UserID: "ash"}

	if rec := performRequest(r, http.MethodDelete, "/api/v1/teams/t1", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without user_id, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodDelete, "/api/v1/teams/missing?user_id=ash", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodDelete, "/api/v1/teams/t1?user_id=gary", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodDelete, "/api/v1/teams/t1?user_id=ash", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if _, ok := deps.teams.teams["t1"]; ok {
		t.Fatalf("team not deleted")
	}
}
