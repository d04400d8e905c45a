package redisutil

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/avoronin/matchbook/internal/config"
)

// Open connects a Redis client and verifies it with a ping.
func Open(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := client.Ping(ctx).Err()
	if err != nil {
		client.Close()

		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
