package cache

import (
	"context"
	"sync"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"
)

// InMemoryProcessedStore is used when Redis is not reachable. It only
// deduplicates within one process.
type InMemoryProcessedStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

var _ ports.ProcessedMessageStore = (*InMemoryProcessedStore)(nil)

func NewInMemoryProcessedStore(ttl time.Duration) *InMemoryProcessedStore {
	if ttl <= 0 {
		ttl = DefaultProcessedTTL
	}
	return &InMemoryProcessedStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *InMemoryProcessedStore) MarkProcessed(_ context.Context, consumer string, id kernel.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	key := processedKey(consumer, id)
	if expiresAt, ok := s.seen[key]; ok && now.Before(expiresAt) {
		return false, nil
	}

	s.seen[key] = now.Add(s.ttl)
	s.evictExpired(now)
	return true, nil
}

func (s *InMemoryProcessedStore) Forget(_ context.Context, consumer string, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.seen, processedKey(consumer, id))
	return nil
}

// evictExpired runs under mu.
func (s *InMemoryProcessedStore) evictExpired(now time.Time) {
	for key, expiresAt := range s.seen {
		if !now.Before(expiresAt) {
			delete(s.seen, key)
		}
	}
}
