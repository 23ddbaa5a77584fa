// Package repository stores token revocation markers.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/credvault/internal/errors"
)

const revocationKeyPrefix = "revoked:"

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(err, "failed to ping redis")
	}
	return client, nil
}

// RedisRevocationRepository keeps, per user, the second at which their tokens were
// last revoked. Markers expire after the token lifetime since no older token can
// still be valid by then.
type RedisRevocationRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRevocationRepository creates a revocation store whose markers live for ttl.
func NewRedisRevocationRepository(client *redis.Client, ttl time.Duration) *RedisRevocationRepository {
	return &RedisRevocationRepository{client: client, ttl: ttl}
}

func revocationKey(userID uuid.UUID) string {
	return revocationKeyPrefix + userID.String()
}

// Revoke invalidates every token of userID issued before at.
func (r *RedisRevocationRepository) Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if err := r.client.Set(ctx, revocationKey(userID), at.Unix(), r.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "failed to store revocation marker")
	}
	return nil
}

// RevokedSince returns the revocation instant of userID, if any.
func (r *RedisRevocationRepository) RevokedSince(ctx context.Context, userID uuid.UUID) (time.Time, bool, error) {
	seconds, err := r.client.Get(ctx, revocationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read revocation marker: %w", err)
	}
	return time.Unix(seconds, 0).UTC(), true, nil
}

// NoopRevocationRepository never revokes. It is used when revocation is disabled and
// tokens stay valid until they expire.
type NoopRevocationRepository struct{}

// Revoke does nothing.
func (NoopRevocationRepository) Revoke(context.Context, uuid.UUID, time.Time) error {
	return nil
}

// RevokedSince always reports no revocation.
func (NoopRevocationRepository) RevokedSince(context.Context, uuid.UUID) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
