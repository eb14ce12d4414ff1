// Package redis implements the leaderboard read index on Redis: the
// per-board sorted sets and the per-tenant nickname hashes.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient parses a redis:// URL, applies the service pool profile, and
// verifies connectivity before returning.
func NewClient(ctx context.Context, log *zap.Logger, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 5
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	log = log.Named("redis").With(zap.String("addr", opts.Addr), zap.Int("db", opts.DB))

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		log.Error("connection failed", zap.Error(err), zap.Duration("ping_rtt", time.Since(start)))
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("connection established", zap.Duration("ping_rtt", time.Since(start)))

	return client, nil
}
