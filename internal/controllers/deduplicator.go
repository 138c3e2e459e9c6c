package controllers

import (
	"sync"
	"time"
)

// RequestDeduplicator не даёт запустить одну и ту же долгую операцию дважды,
// пока первая не завершилась. Запись с истёкшим сроком считается свободной.
type RequestDeduplicator struct {
	mu    sync.Mutex
	locks map[string]time.Time
	now   func() time.Time
}

func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{locks: make(map[string]time.Time), now: time.Now}
}

func (d *RequestDeduplicator) TryAcquire(key string, ttl time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if expiry, exists := d.locks[key]; exists && now.Before(expiry) {
		return false
	}
	d.locks[key] = now.Add(ttl)
	return true
}

func (d *RequestDeduplicator) Release(key string) {
	d.mu.Lock()
	delete(d.locks, key)
	d.mu.Unlock()
}
