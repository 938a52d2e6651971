// Package cache implementa el caché de resúmenes de reportes sobre Redis.
// Es una optimización de lectura, no un mecanismo de correctitud: un fallo
// de Redis degrada a consultar la DB, nunca bloquea la petición.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yacouba/Boutique-api/pkg/config"
)

const keyPrefix = "reports:"

// RedisCache adaptador go-redis del puerto reports.Cache.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache conecta el cliente y verifica con Ping.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb, ttl: time.Duration(cfg.TTLMin) * time.Minute}, nil
}

// Get devuelve el valor cacheado o (nil, nil) si la clave no existe.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return val, nil
}

// Set guarda el valor con el TTL configurado.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateStore borra los resúmenes afectados por una mutación de la
// tienda: toda clave que nombre a storeID y las agregadas globales ("all").
// SCAN incremental para no bloquear Redis con KEYS.
func (c *RedisCache) InvalidateStore(ctx context.Context, storeID string) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		var doomed []string
		for _, k := range keys {
			if strings.Contains(k, ":"+storeID+":") || strings.Contains(k, ":all:") {
				doomed = append(doomed, k)
			}
		}
		if len(doomed) > 0 {
			if err := c.rdb.Del(ctx, doomed...).Err(); err != nil {
				return fmt.Errorf("cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close cierra el cliente.
func (c *RedisCache) Close() error { return c.rdb.Close() }

// NoopCache implementación nula para arrancar sin Redis.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, error)   { return nil, nil }
func (NoopCache) Set(context.Context, string, []byte) error     { return nil }
func (NoopCache) InvalidateStore(context.Context, string) error { return nil }
