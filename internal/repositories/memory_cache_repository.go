package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCacheRepository - кеш в памяти процесса, когда Redis не настроен.
type MemoryCacheRepository struct {
	cache *gocache.Cache
	mu    sync.Mutex
}

func NewMemoryCacheRepository() CacheRepositoryInterface {
	return &MemoryCacheRepository{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	val, ok := m.cache.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return toString(val), nil
}

func (m *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.cache.Set(key, toString(value), ttl(expiration))
	return nil
}

func (m *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.cache.Delete(k)
	}
	return nil
}

// Incr хранит счётчик как строку, как это делает Redis.
func (m *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	val, expiresAt, ok := m.cache.GetWithExpiration(key)
	if ok {
		if _, err := fmt.Sscan(toString(val), &n); err != nil {
			return 0, fmt.Errorf("значение ключа %s не является числом", key)
		}
	}
	n++

	expiration := gocache.NoExpiration
	if ok && !expiresAt.IsZero() {
		expiration = time.Until(expiresAt)
	}
	m.cache.Set(key, fmt.Sprint(n), expiration)
	return n, nil
}

func (m *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.cache.Get(key)
	if !ok {
		return false, nil
	}
	m.cache.Set(key, val, ttl(expiration))
	return true, nil
}

func ttl(d time.Duration) time.Duration {
	if d <= 0 {
		return gocache.NoExpiration
	}
	return d
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
