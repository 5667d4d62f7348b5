package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pokebuilder/internal/config"
	"pokebuilder/internal/db"
	"pokebuilder/internal/pokeapi"
	"pokebuilder/internal/repository"
	"pokebuilder/internal/service"
)

func main() {
	withTypes := flag.Bool("types", false, "ingest the 18 type relations")
	pokemonFrom := flag.Int("pokemon-from", 1, "first pokedex id to ingest")
	pokemonTo := flag.Int("pokemon-to", 0, "last pokedex id to ingest (0 skips pokemon)")
	itemsFrom := flag.Int("items-from", 1, "first item id to ingest")
	itemsTo := flag.Int("items-to", 0, "last item id to ingest (0 skips items)")
	ban := flag.String("ban", "", "comma separated pokedex ids to mark as banned")
	concurrency := flag.Int("concurrency", 4, "parallel requests against PokeAPI")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	// Sin redis no hay cache que invalidar.
	var recCache service.RecommendationCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		recCache = service.NewRedisRecommendationCache(redisClient, cfg.RecommendCacheTTL)
	}

	ingest := service.NewIngestService(
		pokeapi.NewHTTPClient(cfg.PokeAPIBaseURL, logger),
		repository.NewPgTypeRepository(pool),
		repository.NewPgPokemonRepository(pool),
		repository.NewPgItemRepository(pool),
		recCache,
		logger,
		*concurrency,
	)

	if *withTypes {
		if err := ingest.IngestTypes(ctx); err != nil {
			logger.Fatal("ingest types", zap.Error(err))
		}
	}
	if *pokemonTo > 0 {
		if _, err := ingest.IngestPokemon(ctx, *pokemonFrom, *pokemonTo); err != nil {
			logger.Fatal("ingest pokemon", zap.Error(err))
		}
	}
	if *itemsTo > 0 {
		if _, err := ingest.IngestItems(ctx, *itemsFrom, *itemsTo); err != nil {
			logger.Fatal("ingest items", zap.Error(err))
		}
	}
	if *ban != "" {
		ids, err := parseIDs(*ban)
		if err != nil {
			logger.Fatal("parse -ban", zap.Error(err))
		}
		if _, err := ingest.BanPokemon(ctx, ids); err != nil {
			logger.Fatal("ban pokemon", zap.Error(err))
		}
	}
}

func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
