package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client with the small surface the application needs.
// Misses are reported as (nil, nil); real connectivity errors propagate so
// callers can decide whether the store is load-bearing (sessions) or
// best-effort (catalog response caching).
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Get returns the value for key, or nil if the key is absent.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Set stores value under key with a TTL.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes the given keys. Deleting absent keys is not an error.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// SAdd adds a member to the set stored at key.
func (c *Client) SAdd(ctx context.Context, key, member string) error {
	return c.client.SAdd(ctx, key, member).Err()
}

// SRem removes a member from the set stored at key.
func (c *Client) SRem(ctx context.Context, key, member string) error {
	return c.client.SRem(ctx, key, member).Err()
}

// SMembers returns all members of the set stored at key.
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.client.SMembers(ctx, key).Result()
}

// Expire sets a TTL on key.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}
