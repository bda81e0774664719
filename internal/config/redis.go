package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis returns a client for the shared rate-limit store. A nil
// return means Redis is unreachable; callers degrade to unlimited rather
// than refusing to boot.
func ConnectRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, rate limiting disabled")
		_ = client.Close()
		return nil
	}

	logrus.WithField("addr", cfg.Addr).Info("connected to Redis")
	return client
}
