package card

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sharedeck/internal/config"
)

const catalogCacheKey = "cards:all"

// Cache stores the full catalog listing.
type Cache interface {
	GetCards(ctx context.Context) ([]Card, bool, error)
	SetCards(ctx context.Context, cards []Card) error
	Invalidate(ctx context.Context) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) GetCards(ctx context.Context) ([]Card, bool, error) {
	raw, err := r.client.Get(ctx, catalogCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read card cache: %w", err)
	}

	var cards []Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, false, fmt.Errorf("failed to decode card cache: %w", err)
	}
	return cards, true, nil
}

func (r *RedisCache) SetCards(ctx context.Context, cards []Card) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, catalogCacheKey, raw, r.ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, catalogCacheKey).Err()
}

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) GetCards(context.Context) ([]Card, bool, error) { return nil, false, nil }
func (NoopCache) SetCards(context.Context, []Card) error         { return nil }
func (NoopCache) Invalidate(context.Context) error               { return nil }

// OpenCache connects to the configured redis instance. It falls back to a
// NoopCache when no address is set or the server does not answer a ping.
func OpenCache(ctx context.Context, cfg config.RedisConfig) Cache {
	if cfg.Addr == "" {
		return NoopCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, card cache disabled", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return NoopCache{}
	}
	return NewRedisCache(client, cfg.CardTTL)
}
