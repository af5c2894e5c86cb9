package http

import (
	"sync"
	"time"
)

const (
	bucketIdleThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter grants each client key `capacity` requests per window. The
// bucket refills completely once a full window has passed.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*clientBucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

func (r *RateLimiter) evictLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, b := range r.clients {
		if now.Sub(b.lastRefill) > bucketIdleThreshold {
			delete(r.clients, key)
		}
	}
}

// Stop ends the eviction goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow consumes one token for key. When the bucket is empty it returns
// false and the time left until the next refill.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[key]
	if !ok {
		r.clients[key] = &clientBucket{tokens: r.capacity - 1, lastRefill: now}
		return true, 0
	}

	if elapsed := now.Sub(b.lastRefill); elapsed >= r.window {
		b.tokens = r.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false, r.window - now.Sub(b.lastRefill)
	}

	b.tokens--
	return true, 0
}
