package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) *RedisStore {
	t.Helper()
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := NewRedisClient(context.Background(), redisURL)
	require.NoError(t, err)
	store := NewRedisStore(client, ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_SaveGetDelete(t *testing.T) {
	store := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	s := New(testProfile(), true)
	require.NoError(t, store.Save(ctx, s))
	t.Cleanup(func() { _ = store.Delete(ctx, s.ID) })

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, testProfile(), got.Profile)
	assert.True(t, got.UsedFallback)

	ttl, err := store.client.TTL(ctx, Key(s.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_NotFound(t *testing.T) {
	store := newTestRedisStore(t, time.Minute)
	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-url://")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.ParseURL")
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a4e-8d3b-4a57-9c1e-2b7f0d9e5a11")
	assert.Equal(t, "jobmatch:session:6f1c2a4e-8d3b-4a57-9c1e-2b7f0d9e5a11", Key(id))
}
