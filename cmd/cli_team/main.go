package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pokebuilder/internal/config"
	"pokebuilder/internal/db"
	"pokebuilder/internal/repository"
	"pokebuilder/internal/service"
)

func main() {
	topN := flag.Int("top", 5, "number of recommendations to print")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	pokemonRepo := repository.NewPgPokemonRepository(pool)
	chart, err := service.LoadTypeChart(ctx, repository.NewPgTypeRepository(pool))
	if err != nil {
		log.Fatalf("cargar tabla de tipos: %v", err)
	}
	engine, err := service.NewRecommendationEngine(chart, service.WithScoringWorkers(cfg.ScoringWorkers))
	if err != nil {
		log.Fatal(err)
	}
	advisor := service.NewAdvisorService(engine, pokemonRepo, nil, service.AdvisorOptions{
		DefaultTopN:   cfg.RecommendTopN,
		PoolLimit:     cfg.CandidatePoolLimit,
		SpriteBaseURL: cfg.SpriteBaseURL,
	}, logger)

	ids, err := readTeamIDs(flag.Args())
	if err != nil {
		log.Fatalf("ids inválidos: %v", err)
	}

	profile, err := advisor.AnalyzeTeam(ctx, ids)
	if err != nil {
		log.Fatalf("analizar equipo: %v", err)
	}
	printJSON("===== Team analysis =====", profile)

	if len(ids) == 6 {
		vuln, err := advisor.TeamVulnerability(ctx, ids)
		if err != nil {
			log.Fatalf("vulnerabilidad: %v", err)
		}
		printJSON("===== Vulnerability =====", vuln)
		return
	}

	recs, err := advisor.RecommendPokemon(ctx, ids, *topN)
	if err != nil {
		log.Fatalf("recomendar: %v", err)
	}
	fmt.Println("===== Recommendations =====")
	for i, rec := range recs {
		fmt.Printf("%d. %s\n\n", i+1, rec.Explanation)
	}
}

// readTeamIDs toma los ids de los argumentos o, si no hay, de una línea de stdin.
func readTeamIDs(args []string) ([]int, error) {
	if len(args) == 0 {
		fmt.Print("Pokédex ids (separados por coma): ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return nil, nil
		}
		args = []string{line}
	}

	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("%q no es un id válido", part)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) > 6 {
		return nil, fmt.Errorf("un equipo tiene como máximo 6 miembros, recibidos %d", len(ids))
	}
	return ids, nil
}

func printJSON(title string, v any) {
	fmt.Println(title)
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
