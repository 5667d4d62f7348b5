package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pokebuilder/internal/domain"
)

const maxFormattedReasons = 4

// DisplayName pone en mayúscula solo la primera letra y el resto en minúscula
// ("mr-mime" -> "Mr-mime"). cases.Caser no es seguro entre goroutines, así que
// se crea por llamada.
func DisplayName(name string) string {
	lower := cases.Lower(language.English).String(name)
	first, size := utf8.DecodeRuneInString(lower)
	if first == utf8.RuneError {
		return lower
	}
	return cases.Upper(language.English).String(string(first)) + lower[size:]
}

// FormatRecommendationText genera el bloque de texto de una recomendación.
func FormatRecommendationText(rec domain.Recommendation) string {
	typeNames := make([]string, len(rec.Pokemon.Types))
	for i, t := range rec.Pokemon.Types {
		typeNames[i] = DisplayName(t.String())
	}

	lines := []string{
		fmt.Sprintf("**%s** (#%d)", DisplayName(rec.Pokemon.Name), rec.Pokemon.PokedexID),
		"Types: " + strings.Join(typeNames, ", "),
		fmt.Sprintf("Score: %.1f/100", rec.Score),
		"",
		"**Why this Pokémon?**",
	}

	reasons := rec.Pros
	if len(reasons) > maxFormattedReasons {
		reasons = reasons[:maxFormattedReasons]
	}
	if len(reasons) == 0 {
		lines = append(lines, "• Brings overall balance to the team.")
	}
	for _, r := range reasons {
		lines = append(lines, "• "+r)
	}

	if len(rec.Cons) > 0 {
		lines = append(lines, "", "**⚠️ Watch out for...**")
		for _, w := range rec.Cons {
			lines = append(lines, "• "+w)
		}
	}

	lines = append(lines,
		"",
		"**Score breakdown:**",
		fmt.Sprintf("• Defensive: %.1f/100", rec.DefensiveScore),
		fmt.Sprintf("• Offensive: %.1f/100", rec.OffensiveScore),
		fmt.Sprintf("• Diversity: %.1f/100", rec.DiversityScore),
		fmt.Sprintf("• Stats: %.1f/100", rec.StatsScore),
	)

	return strings.Join(lines, "\n")
}
