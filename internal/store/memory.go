package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/http-temperature-accessory/internal/accessory"
)

var (
	// ErrNotFound is returned when no reading has been stored yet, or no
	// reading falls inside a requested range.
	ErrNotFound = errors.New("no reading available")
)

// MemoryStore is a concurrency-safe in-memory reading store. The last
// reading is the cache hosts read from; a bounded history is kept for
// the range queries. Nothing is persisted.
type MemoryStore struct {
	mu sync.RWMutex

	readings []accessory.Reading

	// retention configuration
	maxHistory int           // max number of retained readings
	maxAge     time.Duration // optional max age for retained readings
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReading appends a new reading and enforces retention. The newest
// reading always survives retention so the cache is never emptied by a
// successful save.
func (s *MemoryStore) SaveReading(r accessory.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, r)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.readings) > s.maxHistory {
		over := len(s.readings) - s.maxHistory
		s.readings = s.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.readings)-1; i++ {
			if !s.readings[i].ObservedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.readings = s.readings[i:]
		}
	}
}

// Latest returns the most recent reading.
func (s *MemoryStore) Latest() (accessory.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return accessory.Reading{}, ErrNotFound
	}
	return s.readings[len(s.readings)-1], nil
}

// Range returns all readings observed between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]accessory.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []accessory.Reading
	for _, r := range s.readings {
		if (r.ObservedAt.Equal(from) || r.ObservedAt.After(from)) &&
			(r.ObservedAt.Equal(to) || r.ObservedAt.Before(to)) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
