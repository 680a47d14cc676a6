// Package cache is the go-redis PlanCache adapter. Everything here is
// best-effort by contract: a nil client degrades every operation to a no-op so
// the pipeline runs with no cache at all.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	id "dermis/pkg/domain"
	"dermis/pkg/platform/sentinel"
)

const (
	planTTL            = 7 * 24 * time.Hour
	recommendationsTTL = 30 * time.Minute
)

// Redis is a Redis-backed plan/recommendations cache keyed by user and
// profile version.
type Redis struct {
	client *redis.Client
}

// NewRedis constructs the adapter. A nil client is valid and yields no-ops.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// SanitizeKeySegment strips the key separator from a segment so external
// values can never split a cache key.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

func planKey(userID id.UserID, version id.ProfileVersion) string {
	return fmt.Sprintf("plan:%s:%d", SanitizeKeySegment(userID.String()), int(version))
}

func recommendationsKey(userID id.UserID, version id.ProfileVersion) string {
	return fmt.Sprintf("recommendations:%s:%d", SanitizeKeySegment(userID.String()), int(version))
}

// GetPlan returns the cached plan payload.
// Returns sentinel.ErrNotFound on a cache miss.
func (c *Redis) GetPlan(ctx context.Context, userID id.UserID, version id.ProfileVersion) ([]byte, error) {
	return c.get(ctx, planKey(userID, version))
}

// SetPlan stores the plan payload under the 7-day TTL.
func (c *Redis) SetPlan(ctx context.Context, userID id.UserID, version id.ProfileVersion, payload []byte) error {
	return c.set(ctx, planKey(userID, version), payload, planTTL)
}

// GetRecommendations returns the cached recommendations payload.
// Returns sentinel.ErrNotFound on a cache miss.
func (c *Redis) GetRecommendations(ctx context.Context, userID id.UserID, version id.ProfileVersion) ([]byte, error) {
	return c.get(ctx, recommendationsKey(userID, version))
}

// SetRecommendations stores the recommendations payload under the 30-minute TTL.
func (c *Redis) SetRecommendations(ctx context.Context, userID id.UserID, version id.ProfileVersion, payload []byte) error {
	return c.set(ctx, recommendationsKey(userID, version), payload, recommendationsTTL)
}

// InvalidateUser deletes both entry kinds for every version 1 through latest.
// The store has no native prefix scan, so the version space is walked
// explicitly with one pipelined round trip.
func (c *Redis) InvalidateUser(ctx context.Context, userID id.UserID, latest id.ProfileVersion) error {
	if c.client == nil || latest < 1 {
		return nil
	}
	pipe := c.client.Pipeline()
	for v := id.ProfileVersion(1); v <= latest; v++ {
		pipe.Del(ctx, planKey(userID, v), recommendationsKey(userID, v))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Redis) get(ctx context.Context, key string) ([]byte, error) {
	if c.client == nil {
		return nil, sentinel.ErrNotFound
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Redis) set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
