package geostore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yanqian/weatherpro/internal/domain/geo"
)

type placeRecord struct {
	place     geo.Place
	expiresAt time.Time
}

// MemoryStore keeps geocode hits and trending counters in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	places   map[string]placeRecord
	trending map[string]int64
	displays map[string]string
	now      func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		places:   make(map[string]placeRecord),
		trending: make(map[string]int64),
		displays: make(map[string]string),
		now:      time.Now,
	}
}

// GetPlace implements geo.Store.
func (s *MemoryStore) GetPlace(_ context.Context, key string) (geo.Place, bool, error) {
	if key == "" {
		return geo.Place{}, false, nil
	}
	s.mu.RLock()
	record, ok := s.places[key]
	s.mu.RUnlock()
	if !ok {
		return geo.Place{}, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.places, key)
		s.mu.Unlock()
		return geo.Place{}, false, nil
	}
	return record.place, true, nil
}

// SavePlace caches the place with optional TTL.
func (s *MemoryStore) SavePlace(_ context.Context, key string, place geo.Place, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.places[key] = placeRecord{place: place, expiresAt: exp}
	return nil
}

// IncrementQuery bumps the counter for a canonical query and records a display string.
func (s *MemoryStore) IncrementQuery(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopQueries returns the most looked-up cities.
func (s *MemoryStore) TopQueries(_ context.Context, limit int) ([]geo.TrendingCity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]geo.TrendingCity, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, geo.TrendingCity{Query: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Query < items[j].Query
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ geo.Store = (*MemoryStore)(nil)
