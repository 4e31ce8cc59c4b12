// Package cache holds the shared redis client backing UI sessions.
package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"ipocket/internal/logx"
)

// Client is the shared redis client
var Client *redis.Client

// InitRedis connects the shared client and verifies the connection with a
// ping before anything depends on it
func InitRedis(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := Client.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logx.L().WithField("addr", addr).Info("redis connected")
	return nil
}

// Close closes the shared client
func Close() error {
	if Client != nil {
		return Client.Close()
	}
	return nil
}
