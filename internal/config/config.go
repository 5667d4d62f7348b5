package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string        `env:"DATABASE_URL,required"`
	DBMaxConns         int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	RecommendCacheTTL  time.Duration `env:"RECOMMEND_CACHE_TTL" envDefault:"10m"`
	RecommendTopN      int           `env:"RECOMMEND_TOP_N" envDefault:"5"`
	CandidatePoolLimit int           `env:"CANDIDATE_POOL_LIMIT" envDefault:"1000"`
	ScoringWorkers     int           `env:"SCORING_WORKERS" envDefault:"0"`
	PokeAPIBaseURL     string        `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	SpriteBaseURL      string        `env:"SPRITE_BASE_URL" envDefault:"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
