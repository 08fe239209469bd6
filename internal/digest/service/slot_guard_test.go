package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSlotGuard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	guard := NewRedisSlotGuard(client)
	ctx := context.Background()
	slot := NewSlot(time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC))

	ok, err := guard.Claim(ctx, "u1", slot)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("digest:slot:u1:2026030208"))
	assert.Equal(t, 2*time.Hour, mr.TTL("digest:slot:u1:2026030208"))

	ok, err = guard.Claim(ctx, "u1", NewSlot(time.Date(2026, 3, 2, 8, 45, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.False(t, ok, "same hour is the same slot")

	ok, err = guard.Claim(ctx, "u2", slot)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, guard.Release(ctx, "u1", slot))
	ok, err = guard.Claim(ctx, "u1", slot)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNopSlotGuard(t *testing.T) {
	guard := NewNopSlotGuard()
	slot := NewSlot(time.Now())

	for i := 0; i < 2; i++ {
		ok, err := guard.Claim(context.Background(), "u1", slot)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.NoError(t, guard.Release(context.Background(), "u1", slot))
}
