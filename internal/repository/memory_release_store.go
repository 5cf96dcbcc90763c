package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"FxRater/internal/domain/models"
	"FxRater/internal/domain/repository"
)

// MemoryReleaseStore keeps the recent economic-calendar releases in memory,
// deduplicated by (currency, event, timestamp). Entries older than maxAge
// are evicted lazily on writes and reads.
type MemoryReleaseStore struct {
	mu       sync.RWMutex
	releases map[releaseKey]models.EconomicRelease
	maxAge   time.Duration
	cap      int
	now      func() time.Time
}

type releaseKey struct {
	currency string
	event    string
	unix     int64
}

// NewMemoryReleaseStore creates a release store. A non-positive maxAge
// disables age eviction; a non-positive cap disables the size bound.
func NewMemoryReleaseStore(maxAge time.Duration, cap int) repository.ReleaseStore {
	return &MemoryReleaseStore{
		releases: make(map[releaseKey]models.EconomicRelease),
		maxAge:   maxAge,
		cap:      cap,
		now:      time.Now,
	}
}

func (s *MemoryReleaseStore) Put(ctx context.Context, releases []models.EconomicRelease) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rel := range releases {
		if rel.Currency == "" || rel.Event == "" || rel.Time.IsZero() {
			return fmt.Errorf("release store: incomplete release %s/%s", rel.Currency, rel.Event)
		}
		s.releases[releaseKey{rel.Currency, rel.Event, rel.Time.Unix()}] = rel
	}

	s.evictLocked()
	return nil
}

func (s *MemoryReleaseStore) ForCurrencies(ctx context.Context, ccys ...string) ([]models.EconomicRelease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(ccys))
	for _, c := range ccys {
		wanted[c] = true
	}

	cutoff := s.cutoff()

	s.mu.RLock()
	var out []models.EconomicRelease
	for _, rel := range s.releases {
		if !wanted[rel.Currency] {
			continue
		}
		if !cutoff.IsZero() && rel.Time.Before(cutoff) {
			continue
		}
		out = append(out, rel)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out, nil
}

func (s *MemoryReleaseStore) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.releases), nil
}

func (s *MemoryReleaseStore) cutoff() time.Time {
	if s.maxAge <= 0 {
		return time.Time{}
	}
	return s.now().Add(-s.maxAge)
}

// evictLocked drops aged-out entries, then the oldest beyond cap.
func (s *MemoryReleaseStore) evictLocked() {
	if cutoff := s.cutoff(); !cutoff.IsZero() {
		for k, rel := range s.releases {
			if rel.Time.Before(cutoff) {
				delete(s.releases, k)
			}
		}
	}

	if s.cap <= 0 || len(s.releases) <= s.cap {
		return
	}
	keys := make([]releaseKey, 0, len(s.releases))
	for k := range s.releases {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].unix < keys[j].unix })
	for _, k := range keys[:len(keys)-s.cap] {
		delete(s.releases, k)
	}
}
