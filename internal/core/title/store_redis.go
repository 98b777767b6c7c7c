// Copyright (c) 2026 Kritika. All rights reserved.

package title

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kritika-app/kritika/internal/platform/constants"
)

// ratingTTL caps staleness in case an invalidation is ever missed.
const ratingTTL = 6 * time.Hour

// unratedSentinel marks a cached "title has no reviews yet" result, which is
// just as valuable to cache as a real average.
const unratedSentinel = "none"

// RedisRatingCache stores computed title rating aggregates in Redis.
type RedisRatingCache struct {
	client *redis.Client
}

func NewRedisRatingCache(client *redis.Client) *RedisRatingCache {
	return &RedisRatingCache{client: client}
}

func (cache *RedisRatingCache) Get(context context.Context, titleID string) (*float64, bool, error) {
	value, err := cache.client.Get(context, ratingKey(titleID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rating_cache_get_failed: %w", err)
	}

	if value == unratedSentinel {
		return nil, true, nil
	}

	rating, err := strconv.ParseFloat(value, 64)
	if err != nil {
		// Corrupt entry. Treat as a miss so it gets rewritten.
		return nil, false, nil
	}

	return &rating, true, nil
}

func (cache *RedisRatingCache) Set(context context.Context, titleID string, rating *float64) error {
	value := unratedSentinel
	if rating != nil {
		value = strconv.FormatFloat(*rating, 'f', -1, 64)
	}

	if err := cache.client.Set(context, ratingKey(titleID), value, ratingTTL).Err(); err != nil {
		return fmt.Errorf("rating_cache_set_failed: %w", err)
	}

	return nil
}

func (cache *RedisRatingCache) Invalidate(context context.Context, titleID string) error {
	if err := cache.client.Del(context, ratingKey(titleID)).Err(); err != nil {
		return fmt.Errorf("rating_cache_invalidate_failed: %w", err)
	}

	return nil
}

func ratingKey(titleID string) string {
	return constants.RedisPrefixTitleRating + titleID
}
