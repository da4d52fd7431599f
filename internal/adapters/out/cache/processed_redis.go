// Package cache implements ports.ProcessedMessageStore on Redis, with an
// in-memory fallback for single-process runs.
package cache

import (
	"context"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// DefaultProcessedTTL bounds how long a message id is remembered. It must
// outlive any realistic redelivery window of the bus.
const DefaultProcessedTTL = 7 * 24 * time.Hour

type RedisProcessedStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.ProcessedMessageStore = (*RedisProcessedStore)(nil)

func NewRedisProcessedStore(client redis.Cmdable, ttl time.Duration) *RedisProcessedStore {
	if ttl <= 0 {
		ttl = DefaultProcessedTTL
	}
	return &RedisProcessedStore{client: client, ttl: ttl}
}

// MarkProcessed uses SETNX so two consumers racing on one id see exactly one
// true.
func (s *RedisProcessedStore) MarkProcessed(ctx context.Context, consumer string, id kernel.UUID) (bool, error) {
	ok, err := s.client.SetNX(ctx, processedKey(consumer, id), time.Now().UTC().Format(time.RFC3339Nano), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (s *RedisProcessedStore) Forget(ctx context.Context, consumer string, id kernel.UUID) error {
	return s.client.Del(ctx, processedKey(consumer, id)).Err()
}

func processedKey(consumer string, id kernel.UUID) string {
	return "processed:" + consumer + ":" + id.String()
}
