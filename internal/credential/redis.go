package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// RedisKey is the hash holding one field per provider.
const RedisKey = "draftly:api_keys"

// Redis serves keys from a Redis hash, the server-side counterpart of the
// extension's key-value settings storage.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to the Redis instance at url (redis://host:port/db).
func NewRedis(url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("credential: parse redis url: %w", err)
	}
	return NewRedisWithClient(redis.NewClient(opt)), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client, key: RedisKey}
}

func (r *Redis) Lookup(ctx context.Context, p registry.Provider) (string, error) {
	key, err := r.client.HGet(ctx, r.key, string(p)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && key == "") {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("credential: redis lookup %s: %w", p, err)
	}
	return key, nil
}

// Set stores the key for p.
func (r *Redis) Set(ctx context.Context, p registry.Provider, key string) error {
	return r.client.HSet(ctx, r.key, string(p), key).Err()
}

// Delete removes the key for p.
func (r *Redis) Delete(ctx context.Context, p registry.Provider) error {
	return r.client.HDel(ctx, r.key, string(p)).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
