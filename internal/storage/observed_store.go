package storage

import (
	"context"
	"sync"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// InMemoryObservedStore provides in-memory observed-record storage for
// development and tests.
type InMemoryObservedStore struct {
	mu   sync.RWMutex
	days map[string]models.ObservedDay // "assetID|date" -> hour -> record
}

// NewInMemoryObservedStore creates a new in-memory observed store.
func NewInMemoryObservedStore() *InMemoryObservedStore {
	return &InMemoryObservedStore{
		days: make(map[string]models.ObservedDay),
	}
}

func observedKey(assetID, date string) string {
	return assetID + "|" + date
}

func (s *InMemoryObservedStore) GetDay(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[observedKey(assetID, date)]
	if !ok {
		return nil, nil
	}

	copied := make(models.ObservedDay, len(day))
	for hour, rec := range day {
		copied[hour] = rec
	}
	return copied, nil
}

func (s *InMemoryObservedStore) SaveRecords(ctx context.Context, assetID, date string, records []models.ObservedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := observedKey(assetID, date)
	day, ok := s.days[key]
	if !ok {
		day = make(models.ObservedDay)
		s.days[key] = day
	}
	for _, rec := range records {
		day[rec.Hour] = rec
	}
	return nil
}
