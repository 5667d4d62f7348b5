package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"pokebuilder/internal/config"
	"pokebuilder/internal/db"
	apihttp "pokebuilder/internal/http"
	"pokebuilder/internal/repository"
	"pokebuilder/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	pokemonRepo := repository.NewPgPokemonRepository(pool)
	typeRepo := repository.NewPgTypeRepository(pool)
	itemRepo := repository.NewPgItemRepository(pool)
	teamRepo := repository.NewPgTeamRepository(pool)

	chart, err := service.LoadTypeChart(ctx, typeRepo)
	if err != nil {
		logger.Fatal("load type chart, run cmd/ingest -types first", zap.Error(err))
	}
	engine, err := service.NewRecommendationEngine(chart, service.WithScoringWorkers(cfg.ScoringWorkers))
	if err != nil {
		logger.Fatal("init recommendation engine", zap.Error(err))
	}
	logger.Info("type chart loaded", zap.Int("types", chart.Len()))

	var recCache service.RecommendationCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, recommendation cache disabled", zap.Error(err))
		} else {
			recCache = service.NewRedisRecommendationCache(redisClient, cfg.RecommendCacheTTL)
		}
		cancel()
	}

	advisorSvc := service.NewAdvisorService(engine, pokemonRepo, recCache, service.AdvisorOptions{
		DefaultTopN:   cfg.RecommendTopN,
		PoolLimit:     cfg.CandidatePoolLimit,
		SpriteBaseURL: cfg.SpriteBaseURL,
	}, logger)
	teamSvc := service.NewTeamService(teamRepo, logger)

	aiHandler := apihttp.NewAIHandler(logger, advisorSvc)
	pokemonHandler := apihttp.NewPokemonHandler(logger, pokemonRepo, itemRepo, cfg.SpriteBaseURL)
	teamHandler := apihttp.NewTeamHandler(logger, teamSvc)
	router := apihttp.NewRouter(logger, aiHandler, pokemonHandler, teamHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
