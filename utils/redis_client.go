package utils

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ubg-fkdk/portal/config"
)

var redisClient *redis.Client

// InitRedis creates the shared client when caching is enabled. An unreachable server is logged, not fatal:
// every cache call degrades to a miss.
func InitRedis(cfg config.AppConfig) *redis.Client {
	if !cfg.CacheEnabled {
		return nil
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		Sugar.Warnf("redis ping failed, list cache will miss: %v", err)
	}
	cacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	return redisClient
}

// SetRedis replaces the shared client; nil disables caching.
func SetRedis(rc *redis.Client) {
	redisClient = rc
}

// GetRedis returns the shared client, or nil when caching is off.
func GetRedis() *redis.Client {
	return redisClient
}
