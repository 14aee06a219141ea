package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/http-temperature-accessory/internal/accessory"
)

func TestLatestOnEmptyStore(t *testing.T) {
	s := NewMemoryStore(10, 0)

	if _, err := s.Latest(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatestReturnsMostRecentReading(t *testing.T) {
	s := NewMemoryStore(10, 0)
	now := time.Now().UTC()

	s.SaveReading(accessory.Reading{Temperature: 20.1, Humidity: 50, ObservedAt: now.Add(-time.Minute)})
	s.SaveReading(accessory.Reading{Temperature: 25.8, Humidity: 38, ObservedAt: now})

	latest, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.Temperature != 25.8 || latest.Humidity != 38 {
		t.Fatalf("unexpected latest reading: %+v", latest)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		s.SaveReading(accessory.Reading{Temperature: float64(i), ObservedAt: now.Add(time.Duration(i) * time.Second)})
	}

	readings, err := s.Range(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 retained readings, got %d", len(readings))
	}
	if readings[0].Temperature != 1 {
		t.Fatalf("expected oldest retained reading to be 1, got %v", readings[0].Temperature)
	}
}

func TestRetentionByAgeKeepsNewestReading(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Now().UTC()

	// A single stale reading must survive: the cache is never emptied by
	// a successful save.
	s.SaveReading(accessory.Reading{Temperature: 18.4, ObservedAt: now.Add(-2 * time.Hour)})

	latest, err := s.Latest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest.Temperature != 18.4 {
		t.Fatalf("unexpected latest reading: %+v", latest)
	}

	// A fresh save evicts the stale one.
	s.SaveReading(accessory.Reading{Temperature: 22.0, ObservedAt: now})

	readings, err := s.Range(now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 1 || readings[0].Temperature != 22.0 {
		t.Fatalf("expected only the fresh reading, got %+v", readings)
	}
}

func TestRangeFiltersByObservationTime(t *testing.T) {
	s := NewMemoryStore(10, 0)
	now := time.Now().UTC()

	s.SaveReading(accessory.Reading{Temperature: 1, ObservedAt: now.Add(-3 * time.Hour)})
	s.SaveReading(accessory.Reading{Temperature: 2, ObservedAt: now.Add(-2 * time.Hour)})
	s.SaveReading(accessory.Reading{Temperature: 3, ObservedAt: now})

	readings, err := s.Range(now.Add(-150*time.Minute), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != 1 || readings[0].Temperature != 2 {
		t.Fatalf("unexpected range result: %+v", readings)
	}

	if _, err := s.Range(now.Add(time.Hour), now.Add(2*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty range, got %v", err)
	}
}
