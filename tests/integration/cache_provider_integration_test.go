//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/adapters/cache"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
)

func TestRedisAdapterRoundTripIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	adapter := cache.NewRedisAdapter(redisClient)
	ctx := context.Background()
	key := fmt.Sprintf("test:roundtrip:%d", time.Now().UnixNano())

	_, err := adapter.Get(ctx, key)
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	err = adapter.Set(ctx, key, []byte(`{"drug":"warfarin"}`), time.Minute)
	require.NoError(t, err)

	value, err := adapter.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"drug":"warfarin"}`), value)

	exists, err := adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	err = adapter.Delete(ctx, key)
	require.NoError(t, err)

	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestRedisAdapterTTLExpiryIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	adapter := cache.NewRedisAdapter(redisClient)
	ctx := context.Background()
	key := fmt.Sprintf("test:ttl:%d", time.Now().UnixNano())

	err := adapter.Set(ctx, key, []byte("short-lived"), time.Second)
	require.NoError(t, err)

	_, err = adapter.Get(ctx, key)
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	_, err = adapter.Get(ctx, key)
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}
