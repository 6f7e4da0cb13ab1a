// Package cache keeps the master lists in Redis for a short TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"catalog-import/internal/domain"
	"catalog-import/internal/logger"
	"catalog-import/internal/metrics"
	"catalog-import/internal/repository"
)

const keyPrefix = "masters:"

// MasterCache serves master lists from Redis and falls back to the repository on a miss.
// A nil Redis client disables caching.
type MasterCache struct {
	source repository.MasterRepository
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis. It returns nil when addr is empty or the server
// does not answer, which degrades the cache to pass-through.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, master lists will not be cached", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// NewMasterCache creates a new master cache.
func NewMasterCache(source repository.MasterRepository, client *redis.Client, ttl time.Duration) *MasterCache {
	return &MasterCache{source: source, client: client, ttl: ttl}
}

// Load returns the three master lists, fetching them concurrently.
func (c *MasterCache) Load(ctx context.Context) (domain.MasterLists, error) {
	var lists domain.MasterLists
	results := make([][]domain.MasterRecord, len(domain.MasterKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.MasterKinds {
		g.Go(func() error {
			records, err := c.get(gctx, kind)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return lists, err
	}

	lists.Generics = results[0]
	lists.Manufacturers = results[1]
	lists.Categories = results[2]
	return lists, nil
}

// Invalidate drops every cached list.
func (c *MasterCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	keys := make([]string, 0, len(domain.MasterKinds))
	for _, kind := range domain.MasterKinds {
		keys = append(keys, cacheKey(kind))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate master cache: %w", err)
	}
	return nil
}

func (c *MasterCache) get(ctx context.Context, kind domain.MasterKind) ([]domain.MasterRecord, error) {
	if c.client != nil {
		data, err := c.client.Get(ctx, cacheKey(kind)).Bytes()
		switch {
		case err == nil:
			var records []domain.MasterRecord
			if jsonErr := json.Unmarshal(data, &records); jsonErr == nil {
				metrics.RecordCacheLookup(metrics.CacheHit)
				return records, nil
			}
			metrics.RecordCacheLookup(metrics.CacheError)
		case err == redis.Nil:
			metrics.RecordCacheLookup(metrics.CacheMiss)
		default:
			metrics.RecordCacheLookup(metrics.CacheError)
			logger.Warn("Master cache read failed", "kind", string(kind), "error", err)
		}
	}

	records, err := c.source.ListMasters(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s masters: %w", kind, err)
	}

	if c.client != nil {
		if data, err := json.Marshal(records); err == nil {
			if err := c.client.Set(ctx, cacheKey(kind), data, c.ttl).Err(); err != nil {
				logger.Warn("Master cache write failed", "kind", string(kind), "error", err)
			}
		}
	}
	return records, nil
}

func cacheKey(kind domain.MasterKind) string {
	return keyPrefix + string(kind)
}
