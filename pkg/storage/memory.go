package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"balticwatch/pkg/tracking"
)

// MemoryStore implements Store with an in-memory slice. It exists for tests
// and should not be used in production.
type MemoryStore struct {
	mu        sync.RWMutex
	positions []*tracking.PositionRecord
}

// NewMemoryStore creates an in-memory position store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// InsertPositions appends copies of the records.
func (s *MemoryStore) InsertPositions(ctx context.Context, positions []*tracking.PositionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pos := range positions {
		if pos == nil {
			continue
		}
		cp := *pos
		s.positions = append(s.positions, &cp)
	}
	return nil
}

// QuerySince returns copies of all records at or after since, ordered by
// MMSI then timestamp.
func (s *MemoryStore) QuerySince(ctx context.Context, since time.Time) ([]*tracking.PositionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*tracking.PositionRecord
	for _, pos := range s.positions {
		if pos.Timestamp.Before(since) {
			continue
		}
		cp := *pos
		results = append(results, &cp)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MMSI != results[j].MMSI {
			return results[i].MMSI < results[j].MMSI
		}
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	return results, nil
}

// Latest returns the most recent record per vessel, ordered by MMSI.
func (s *MemoryStore) Latest(ctx context.Context) ([]*tracking.PositionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[int64]*tracking.PositionRecord)
	for _, pos := range s.positions {
		cur, ok := latest[pos.MMSI]
		if !ok || pos.Timestamp.After(cur.Timestamp) {
			latest[pos.MMSI] = pos
		}
	}

	results := make([]*tracking.PositionRecord, 0, len(latest))
	for _, pos := range latest {
		cp := *pos
		results = append(results, &cp)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].MMSI < results[j].MMSI })
	return results, nil
}

// DeleteVessels removes records for the given vessels, bounded by since
// when non-nil.
func (s *MemoryStore) DeleteVessels(ctx context.Context, mmsis []int64, since *time.Time) (int64, error) {
	if len(mmsis) == 0 {
		return 0, nil
	}

	targets := make(map[int64]struct{}, len(mmsis))
	for _, mmsi := range mmsis {
		targets[mmsi] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []*tracking.PositionRecord
	var deleted int64
	for _, pos := range s.positions {
		_, targeted := targets[pos.MMSI]
		if targeted && (since == nil || !pos.Timestamp.Before(*since)) {
			deleted++
			continue
		}
		kept = append(kept, pos)
	}
	s.positions = kept
	return deleted, nil
}

// CountPositions returns the number of stored records.
func (s *MemoryStore) CountPositions(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.positions)), nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
