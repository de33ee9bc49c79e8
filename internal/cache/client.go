package cache

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/accountresolver/internal/config"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Writer is a cache tier that can also be warmed explicitly.
type Writer interface {
	subscriptiondomain.RecordStore
	Put(ctx context.Context, id string, sub *subscriptiondomain.Subscription) error
	Delete(ctx context.Context, id string) error
}

// NewClient connects to Redis and verifies the connection.
func NewClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// provideClient returns nil when REDIS_ADDR is unset.
func provideClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client, err := NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	return client, nil
}

// NewTier picks the cache tier: Redis when a client is configured, memory otherwise.
func NewTier(client *redis.Client, log *zap.Logger) Writer {
	if client == nil {
		log.Info("cache tier: in-memory")
		return NewMemoryStore()
	}
	log.Info("cache tier: redis")
	return NewRedisStore(client)
}

func provideLocker(client *redis.Client) *Locker {
	if client == nil {
		return nil
	}
	return NewLocker(client)
}
