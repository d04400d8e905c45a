// Package rediscache is a read-through Redis layer over the matches
// repo for display reads. Placement and settlement never go through it:
// the ledger transaction always reads odds and status straight from
// Postgres.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avoronin/matchbook/internal/repos/matches"
)

var _ matches.Reader = (*Cache)(nil)

type Cache struct {
	next   matches.Reader
	client *redis.Client
	ttl    time.Duration
}

func New(next matches.Reader, client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{next: next, client: client, ttl: ttl}
}

func keyMatch(matchID string) string { return "match:" + matchID }

const keyMatchList = "match:all"

func (c *Cache) Get(ctx context.Context, matchID string) (*matches.Match, error) {
	var m matches.Match

	hit, err := c.lookup(ctx, keyMatch(matchID), &m)
	if err != nil {
		slog.Warn("match cache read failed", "match_id", matchID, "error", err)
	}

	if hit {
		return &m, nil
	}

	fresh, err := c.next.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, keyMatch(matchID), fresh)

	return fresh, nil
}

func (c *Cache) List(ctx context.Context) ([]matches.Match, error) {
	var all []matches.Match

	hit, err := c.lookup(ctx, keyMatchList, &all)
	if err != nil {
		slog.Warn("match cache read failed", "error", err)
	}

	if hit {
		return all, nil
	}

	fresh, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, keyMatchList, fresh)

	return fresh, nil
}

// Invalidate drops the cached entries for a match after settlement so
// the FINISHED status shows up before the TTL expires.
func (c *Cache) Invalidate(ctx context.Context, matchID string) {
	err := c.client.Del(ctx, keyMatch(matchID), keyMatchList).Err()
	if err != nil {
		slog.Warn("match cache invalidate failed", "match_id", matchID, "error", err)
	}
}

func (c *Cache) lookup(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	err = json.Unmarshal(b, dst)
	if err != nil {
		return false, fmt.Errorf("decode cached match: %w", err)
	}

	return true, nil
}

func (c *Cache) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	err = c.client.Set(ctx, key, b, c.ttl).Err()
	if err != nil {
		slog.Warn("match cache write failed", "key", key, "error", err)
	}
}
