package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// NewRedisClient builds a client without contacting the server.
func NewRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// InitRedis sets RedisClient and checks the connection.
func InitRedis(ctx context.Context, cfg *Config) {
	RedisClient = NewRedisClient(cfg)

	s, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("ping", s))
}
