package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 24 * time.Hour

// Cache provides Redis-backed daily puzzle caching to offload the DB on the
// hot start-game path. The store stays canonical; cache misses and failures
// fall through to it.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ PuzzleCache = (*Cache)(nil)

// NewCache wraps a Redis client. A non-positive ttl uses the default.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(date string) string {
	return "dailypuzzle:" + date
}

func (c *Cache) Get(ctx context.Context, date string) (*DailyPuzzle, error) {
	data, err := c.client.Get(ctx, c.key(date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var puzzle DailyPuzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func (c *Cache) Set(ctx context.Context, puzzle *DailyPuzzle) error {
	data, err := json.Marshal(puzzle)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(puzzle.Date), data, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, date string) error {
	return c.client.Del(ctx, c.key(date)).Err()
}
