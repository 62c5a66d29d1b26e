package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"hinge-bot/internal/domain"
)

// QuotaCache cachea la última cuota de likes reportada por el servicio.
// La cuota es pull, no push: staleness acotada por el refresh posterior a
// cada like es esperada, así que un TTL corto alcanza.
type QuotaCache interface {
	Get() (domain.LikeLimit, bool)
	Set(limit domain.LikeLimit)
}

type memoryQuotaCache struct {
	mu      sync.Mutex
	limit   domain.LikeLimit
	expires time.Time
	ttl     time.Duration
}

// NewMemoryQuotaCache crea el cache en memoria con el TTL dado.
func NewMemoryQuotaCache(ttl time.Duration) QuotaCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &memoryQuotaCache{ttl: ttl}
}

func (c *memoryQuotaCache) Get() (domain.LikeLimit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expires.IsZero() || time.Now().After(c.expires) {
		return domain.LikeLimit{}, false
	}
	return c.limit, true
}

func (c *memoryQuotaCache) Set(limit domain.LikeLimit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	c.expires = time.Now().Add(c.ttl)
}

type redisQuotaCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisQuotaCache crea el cache respaldado en redis; un error de redis
// cuenta como miss, nunca rompe el flujo de likes.
func NewRedisQuotaCache(client *redis.Client, ttl time.Duration) QuotaCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisQuotaCache{client: client, key: "hinge:likelimit", ttl: ttl}
}

func (c *redisQuotaCache) Get() (domain.LikeLimit, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return domain.LikeLimit{}, false
	}
	var limit domain.LikeLimit
	if err := json.Unmarshal(data, &limit); err != nil {
		return domain.LikeLimit{}, false
	}
	return limit, true
}

func (c *redisQuotaCache) Set(limit domain.LikeLimit) {
	data, err := json.Marshal(limit)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	c.client.Set(ctx, c.key, data, c.ttl)
}
