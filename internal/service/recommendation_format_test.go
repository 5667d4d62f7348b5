package service

import (
	"strings"
	"testing"

	"pokebuilder/internal/domain"
)

func TestFormatRecommendationText(t *testing.T) {
	rec := domain.Recommendation{
		Pokemon:        charizard,
		Score:          58.5,
		DefensiveScore: 35,
		OffensiveScore: 75,
		DiversityScore: 90,
		StatsScore:     50,
		Pros:           []string{"p1", "p2", "p3", "p4", "p5"},
		Cons:           []string{"Adds a new weakness to Rock"},
	}

	text := FormatRecommendationText(rec)
	lines := strings.Split(text, "\n")

	if lines[0] != "**Charizard** (#6)" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Types: Fire, Flying" {
		t.Fatalf("types line = %q", lines[1])
	}
	if lines[2] != "Score: 58.5/100" {
		t.Fatalf("score line = %q", lines[2])
	}
	if strings.Contains(text, "• p5") {
		t.Fatalf("expected at most 4 reasons")
	}
	if !strings.Contains(text, "**⚠️ Watch out for...**\n• Adds a new weakness to Rock") {
		t.Fatalf("warnings block missing:\n%s", text)
	}
	if !strings.HasSuffix(text, "• Stats: 50.0/100") {
		t.Fatalf("breakdown missing:\n%s", text)
	}
}

func TestFormatRecommendationTextWithoutReasons(t *testing.T) {
	text := FormatRecommendationText(domain.Recommendation{Pokemon: pikachu, Score: 54.5})
	if !strings.Contains(text, "• Brings overall balance to the team.") {
		t.Fatalf("expected fallback reason:\n%s", text)
	}
	if strings.Contains(text, "Watch out") {
		t.Fatalf("no warnings expected:\n%s", text)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "charizard", want: "Charizard"},
		{in: "mr-mime", want: "Mr-mime"},
		{in: "tapu-koko", want: "Tapu-koko"},
		{in: "FIRE", want: "Fire"},
		{in: "éevee", want: "Éevee"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
