package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisGuard_SeenAfterMarkUntilExpiry(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	guard := NewRedisGuard(client, "dedup:", time.Minute)

	seen, err := guard.Seen(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, guard.Mark(ctx, "k1"))

	seen, err = guard.Seen(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, time.Minute, mr.TTL("dedup:k1"))

	mr.FastForward(2 * time.Minute)

	seen, err = guard.Seen(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNoopGuard(t *testing.T) {
	var g Guard = NoopGuard{}
	require.NoError(t, g.Mark(context.Background(), "k"))
	seen, err := g.Seen(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, seen)
}
