package view

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisInvalidatorBumpsVersions(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	inv := NewRedisInvalidator(client, nil)

	v, err := inv.Version(ctx, Channel("c1"))
	require.NoError(t, err)
	assert.Zero(t, v)

	inv.Invalidate(ctx, Channel("c1"), Thread("c1", "m1"))
	inv.Invalidate(ctx, Channel("c1"))

	v, err = inv.Version(ctx, Channel("c1"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)
	v, err = inv.Version(ctx, Thread("c1", "m1"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
}

func TestRedisInvalidatorPublishesScopes(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	inv := NewRedisInvalidator(client, nil)

	sub := client.Subscribe(ctx, inv.Channel())
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	msgs := sub.Channel()

	inv.Invalidate(ctx, Conversation("p2", "p1"))

	select {
	case msg := <-msgs:
		assert.Equal(t, "messages/p1:p2", msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no invalidation published")
	}
}

func TestRedisInvalidatorIsBestEffort(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	inv := NewRedisInvalidator(client, nil)
	mr.Close()

	assert.NotPanics(t, func() { inv.Invalidate(ctx, ChannelList()) })
	_, err := inv.Version(ctx, ChannelList())
	assert.Error(t, err)
}
