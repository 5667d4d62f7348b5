package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pokebuilder/internal/domain"
)

type mockTeamRepo struct {
	teams     map[string]domain.Team
	upsertErr error
	deleted   []string
}

func newMockTeamRepo() *mockTeamRepo {
	return &mockTeamRepo{teams: make(map[string]domain.Team)}
}

func (m *mockTeamRepo) Upsert(ctx context.Context, team domain.Team) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.teams[team.ID] = team
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (domain.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return domain.Team{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *mockTeamRepo) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	out := []domain.Team{}
	for _, t := range m.teams {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id string) error {
	delete(m.teams, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newTestTeamService(repo *mockTeamRepo, now time.Time) *TeamService {
	svc := NewTeamService(repo, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestTeamServiceSaveCreate(t *testing.T) {
	repo := newMockTeamRepo()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestTeamService(repo, now)

	team, updated, err := svc.Save(context.Background(), SaveTeamInput{
		UserID:  "ash",
		Name:    "Kanto",
		Format:  "gen9ou",
		Members: []domain.TeamMember{{BasePokemon: "pikachu"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatalf("expected create")
	}
	if _, err := uuid.Parse(team.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", team.ID)
	}
	if !team.CreatedAt.Equal(now) || !team.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected timestamps %v %v", team.CreatedAt, team.UpdatedAt)
	}
}

func TestTeamServiceSaveUpdatePreservesCreatedAt(t *testing.T) {
	repo := newMockTeamRepo()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.teams["t1"] = domain.Team{ID: "t1", UserID: "ash", Name: "Old", CreatedAt: created, UpdatedAt: created}

	now := created.Add(48 * time.Hour)
	svc := newTestTeamService(repo, now)

	team, updated, err := svc.Save(context.Background(), SaveTeamInput{TeamID: "t1", UserID: "ash", Name: "New", Format: "vgc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Fatalf("expected update")
	}
	if !team.CreatedAt.Equal(created) || !team.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps created=%v updated=%v", team.CreatedAt, team.UpdatedAt)
	}
	if repo.teams["t1"].Name != "New" {
		t.Fatalf("team not overwritten")
	}
}

func TestTeamServiceSaveErrors(t *testing.T) {
	repo := newMockTeamRepo()
	repo.teams["t1"] = domain.Team{ID: "t1", UserID: "gary"}
	svc := newTestTeamService(repo, time.Now())

	_, _, err := svc.Save(context.Background(), SaveTeamInput{TeamID: "t1", UserID: "ash"})
	if !errors.Is(err, ErrTeamNotOwned) {
		t.Fatalf("expected ErrTeamNotOwned, got %v", err)
	}

	members := make([]domain.TeamMember, 7)
	_, _, err = svc.Save(context.Background(), SaveTeamInput{UserID: "ash", Members: members})
	if !errors.Is(err, ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}

	repo.upsertErr = errors.New("db down")
	if _, _, err := svc.Save(context.Background(), SaveTeamInput{UserID: "ash"}); err == nil {
		t.Fatalf("expected upsert error")
	}
}

func TestTeamServiceDelete(t *testing.T) {
	repo := newMockTeamRepo()
	repo.teams["t1"] = domain.Team{ID: "t1", UserID: "ash"}
	svc := newTestTeamService(repo, time.Now())

	if err := svc.Delete(context.Background(), "missing", "ash"); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "t1", "gary"); !errors.Is(err, ErrTeamNotOwned) {
		t.Fatalf("expected ErrTeamNotOwned, got %v", err)
	}
	if err := svc.Delete(context.Background(), "t1", "ash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "t1" {
		t.Fatalf("delete not forwarded: %v", repo.deleted)
	}
}
