package messaging

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard remembers deliveries that were already applied, so a redelivered
// quantity message is not applied twice.
type Guard interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// NoopGuard never reports a delivery as seen.
type NoopGuard struct{}

func (NoopGuard) Seen(context.Context, string) (bool, error) { return false, nil }
func (NoopGuard) Mark(context.Context, string) error         { return nil }

// RedisGuard keeps applied delivery keys in Redis for ttl.
type RedisGuard struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisGuard creates a guard storing keys under prefix.
func NewRedisGuard(client redis.Cmdable, prefix string, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, ttl: ttl}
}

func (g *RedisGuard) Seen(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (g *RedisGuard) Mark(ctx context.Context, key string) error {
	return g.client.Set(ctx, g.prefix+key, time.Now().UTC().Format(time.RFC3339), g.ttl).Err()
}
