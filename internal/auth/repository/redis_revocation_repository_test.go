package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRevocationRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NoMarker", func(t *testing.T) {
		_, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Hour)

		_, found, err := repo.RevokedSince(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success_RevokeAndRead", func(t *testing.T) {
		mr, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Hour)
		userID := uuid.New()
		at := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)

		require.NoError(t, repo.Revoke(ctx, userID, at))

		since, found, err := repo.RevokedSince(ctx, userID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, at.Truncate(time.Second), since)

		assert.Equal(t, time.Hour, mr.TTL("revoked:"+userID.String()))
	})

	t.Run("Success_MarkerExpires", func(t *testing.T) {
		mr, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Minute)
		userID := uuid.New()

		require.NoError(t, repo.Revoke(ctx, userID, time.Now()))
		mr.FastForward(2 * time.Minute)

		_, found, err := repo.RevokedSince(ctx, userID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Success_LaterRevocationOverwrites", func(t *testing.T) {
		_, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Hour)
		userID := uuid.New()
		first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, repo.Revoke(ctx, userID, first))
		require.NoError(t, repo.Revoke(ctx, userID, first.Add(time.Minute)))

		since, _, err := repo.RevokedSince(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, first.Add(time.Minute), since)
	})

	t.Run("Error_RedisUnavailable", func(t *testing.T) {
		mr, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Hour)
		mr.Close()

		assert.Error(t, repo.Revoke(ctx, uuid.New(), time.Now()))
		_, _, err := repo.RevokedSince(ctx, uuid.New())
		assert.Error(t, err)
	})

	t.Run("Error_CorruptMarker", func(t *testing.T) {
		mr, client := setupRedis(t)
		repo := NewRedisRevocationRepository(client, time.Hour)
		userID := uuid.New()
		require.NoError(t, mr.Set("revoked:"+userID.String(), "yesterday"))

		_, _, err := repo.RevokedSince(ctx, userID)
		assert.Error(t, err)
	})
}

func TestNewRedisClient(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
		require.NoError(t, err)
		assert.NoError(t, client.Close())
	})

	t.Run("Error_Unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		client, err := NewRedisClient(context.Background(), addr, "", 0)
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestNoopRevocationRepository(t *testing.T) {
	repo := NoopRevocationRepository{}

	require.NoError(t, repo.Revoke(context.Background(), uuid.New(), time.Now()))
	_, found, err := repo.RevokedSince(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, found)
}
