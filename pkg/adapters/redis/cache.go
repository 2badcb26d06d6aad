package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Cache implements ports.ParseCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached parses.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached parses.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "frasig:parse:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// key hashes the text so arbitrary user input never ends up in key names.
func (c *Cache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get retrieves the sentences stored for text.
func (c *Cache) Get(ctx context.Context, text string) ([]domain.Sentence, error) {
	val, err := c.client.Get(ctx, c.key(text)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sentences []domain.Sentence
	if err := json.Unmarshal(val, &sentences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sentences: %w", err)
	}
	return sentences, nil
}

// Set persists the sentences for text.
func (c *Cache) Set(ctx context.Context, text string, sentences []domain.Sentence) error {
	if sentences == nil {
		sentences = []domain.Sentence{}
	}
	data, err := json.Marshal(sentences)
	if err != nil {
		return fmt.Errorf("failed to marshal sentences: %w", err)
	}

	// Use 0 for no expiration if ttl is not set.
	if err := c.client.Set(ctx, c.key(text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity to the server.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
