package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache guarda respuestas de recomendación ya calculadas.
// Un cache nil desactiva el cacheo.
type RecommendationCache interface {
	Get(ctx context.Context, teamIDs []int, topN int) ([]RecommendationView, bool, error)
	Set(ctx context.Context, teamIDs []int, topN int, recs []RecommendationView) error
	// Invalidate descarta todas las entradas tras un cambio de datos (ingesta o baneos).
	Invalidate(ctx context.Context) error
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type redisRecommendationCache struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) RecommendationCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisRecommendationCache{
		client: client,
		ttl:    ttl,
		prefix: "ai:recommend:v1:",
	}
}

// Las claves llevan la versión de datos vigente: <prefix><version>:<ids>:<topN>.
// Subir la versión deja huérfanas las entradas anteriores hasta que expira su TTL.
func (c *redisRecommendationCache) versionKey() string {
	return c.prefix + "version"
}

func (c *redisRecommendationCache) dataVersion(ctx context.Context) (string, error) {
	v, err := c.client.Get(ctx, c.versionKey()).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return v, err
}

func (c *redisRecommendationCache) key(version string, teamIDs []int, topN int) string {
	parts := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		parts[i] = strconv.Itoa(id)
	}
	return c.prefix + version + ":" + strings.Join(parts, ",") + ":" + strconv.Itoa(topN)
}

func (c *redisRecommendationCache) Get(ctx context.Context, teamIDs []int, topN int) ([]RecommendationView, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	version, err := c.dataVersion(ctx)
	if err != nil {
		return nil, false, err
	}
	raw, err := c.client.Get(ctx, c.key(version, teamIDs, topN)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var recs []RecommendationView
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false, err
	}
	return recs, true, nil
}

func (c *redisRecommendationCache) Set(ctx context.Context, teamIDs []int, topN int, recs []RecommendationView) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	version, err := c.dataVersion(ctx)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(version, teamIDs, topN), payload, c.ttl).Err()
}

func (c *redisRecommendationCache) Invalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Incr(ctx, c.versionKey()).Err()
}
