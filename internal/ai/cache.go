package ai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quicksupply/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MatchCache caches AI match results by normalised query text so
// repeated searches skip the model. A nil *MatchCache is valid and
// always misses, which is how the cache is disabled.
type MatchCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewMatchCache connects the cache, or returns nil when no redis
// address is configured.
func NewMatchCache(cfg *config.RedisConfig, log *zap.Logger) *MatchCache {
	if cfg.Addr == "" {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &MatchCache{rdb: rdb, ttl: cfg.MatchTTL, log: log}
}

func matchKey(query string) string {
	return "aimatch:" + strings.ToLower(strings.TrimSpace(query))
}

// Get returns a cached match result for the query. Any redis error is a
// miss: the cache never blocks a match.
func (c *MatchCache) Get(ctx context.Context, query string) (MatchResult, bool) {
	if c == nil {
		return MatchResult{}, false
	}
	raw, err := c.rdb.Get(ctx, matchKey(query)).Result()
	if err == redis.Nil {
		return MatchResult{}, false
	}
	if err != nil {
		c.log.Warn("match cache read failed", zap.Error(err))
		return MatchResult{}, false
	}
	var result MatchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.log.Warn("match cache entry malformed, dropping", zap.Error(err))
		c.rdb.Del(ctx, matchKey(query))
		return MatchResult{}, false
	}
	return result, true
}

// Set stores a match result. Write failures are logged only.
func (c *MatchCache) Set(ctx context.Context, query string, result MatchResult) {
	if c == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, matchKey(query), data, c.ttl).Err(); err != nil {
		c.log.Warn("match cache write failed", zap.Error(err))
	}
}
