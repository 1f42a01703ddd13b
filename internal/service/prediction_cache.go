package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"mental-predictor/internal/feature"
)

// PredictionCache guarda predicciones exitosas por vector de features.
type PredictionCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, prediction json.RawMessage, ttl time.Duration) error
}

// CacheKey deriva la clave del payload serializado, asi dos vectores que
// viajan igual por la red comparten entrada.
func CacheKey(vec feature.Vector) (string, error) {
	data, err := json.Marshal(vec.Payload())
	if err != nil {
		return "", fmt.Errorf("marshal cache key: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type memoryPredictionCache struct {
	mu    sync.Mutex
	items map[string]cachedPrediction
}

type cachedPrediction struct {
	value     json.RawMessage
	expiresAt time.Time
}

// NewMemoryPredictionCache crea un cache en memoria con expiracion por entrada.
func NewMemoryPredictionCache() PredictionCache {
	return &memoryPredictionCache{
		items: make(map[string]cachedPrediction),
	}
}

func (c *memoryPredictionCache) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return item.value, true, nil
}

func (c *memoryPredictionCache) Set(_ context.Context, key string, prediction json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 || len(prediction) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	value := make(json.RawMessage, len(prediction))
	copy(value, prediction)
	c.items[key] = cachedPrediction{
		value:     value,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type redisPredictionCache struct {
	client  redisKV
	prefix  string
	timeout time.Duration
}

// NewRedisPredictionCache devuelve nil si no hay cliente.
func NewRedisPredictionCache(client *redis.Client) PredictionCache {
	if client == nil {
		return nil
	}
	return &redisPredictionCache{
		client:  client,
		prefix:  "predict:cache:",
		timeout: 500 * time.Millisecond,
	}
}

func (c *redisPredictionCache) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return json.RawMessage(val), true, nil
}

func (c *redisPredictionCache) Set(ctx context.Context, key string, prediction json.RawMessage, ttl time.Duration) error {
	if ttl <= 0 || len(prediction) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.client.Set(ctx, c.prefix+key, []byte(prediction), ttl).Err()
}
