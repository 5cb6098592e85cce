package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Cache stores recognized text by image digest.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string) error
}

type lruEntry struct {
	text      string
	expiresAt time.Time
}

// LRUCache is an in-process cache bounded by entry count and age.
type LRUCache struct {
	entries *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

func NewLRUCache(size int, ttl time.Duration) (*LRUCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &LRUCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

func (c *LRUCache) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := c.entries.Get(key)
	if !ok {
		return "", false, nil
	}
	entry := value.(lruEntry)
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return "", false, nil
	}
	return entry.text, true, nil
}

func (c *LRUCache) Set(_ context.Context, key, text string) error {
	c.entries.Add(key, lruEntry{text: text, expiresAt: c.now().Add(c.ttl)})
	return nil
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache shares recognized text between server instances.
type RedisCache struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

const redisPrefix = "club-budget:ocr"

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: redisPrefix, ttl: ttl}
}

func (c *RedisCache) key(digest string) string {
	return c.prefix + ":" + digest
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, text string) error {
	return c.client.Set(ctx, c.key(key), text, c.ttl).Err()
}

// Digest is the cache key for an image.
func Digest(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// CachedRecognizer consults the cache before calling the wrapped recognizer.
// Cache failures are logged and otherwise ignored. Concurrent requests for
// the same image share one call to the recognizer.
type CachedRecognizer struct {
	next     Recognizer
	cache    Cache
	log      *logrus.Logger
	inflight singleflight.Group
}

func NewCachedRecognizer(next Recognizer, cache Cache, log *logrus.Logger) *CachedRecognizer {
	return &CachedRecognizer{
		next:  next,
		cache: cache,
		log:   log,
	}
}

func (r *CachedRecognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	key := Digest(image)

	text, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.WithError(err).WithField("digest", key).Warn("CachedRecognizer.RecognizeText.cacheGet")
	}
	if ok {
		return text, nil
	}

	result, err, _ := r.inflight.Do(key, func() (interface{}, error) {
		recognized, err := r.next.RecognizeText(ctx, image)
		if err != nil {
			return "", err
		}
		if err := r.cache.Set(ctx, key, recognized); err != nil {
			r.log.WithError(err).WithField("digest", key).Warn("CachedRecognizer.RecognizeText.cacheSet")
		}
		return recognized, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
