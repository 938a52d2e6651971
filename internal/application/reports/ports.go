package reports

import "context"

// Cache puerto del caché de resúmenes. Get devuelve (nil, nil) en miss.
// Lo implementan cache.RedisCache y cache.NoopCache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	InvalidateStore(ctx context.Context, storeID string) error
}
