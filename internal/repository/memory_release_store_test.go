package repository

import (
	"context"
	"testing"
	"time"

	"FxRater/internal/domain/models"
)

func rel(ccy, event string, age time.Duration, now time.Time) models.EconomicRelease {
	return models.EconomicRelease{Currency: ccy, Event: event, Time: now.Add(-age), Actual: 1}
}

func TestMemoryReleaseStore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := NewMemoryReleaseStore(14*24*time.Hour, 0).(*MemoryReleaseStore)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	err := s.Put(ctx, []models.EconomicRelease{
		rel("USD", "CPI", 48*time.Hour, now),
		rel("USD", "NFP", 24*time.Hour, now),
		rel("EUR", "CPI", 12*time.Hour, now),
		rel("USD", "CPI", 48*time.Hour, now), // duplicate
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if n, _ := s.Len(ctx); n != 3 {
		t.Errorf("Len = %d, want 3 after dedup", n)
	}

	got, err := s.ForCurrencies(ctx, "USD")
	if err != nil {
		t.Fatalf("ForCurrencies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("USD releases = %d, want 2", len(got))
	}
	if got[0].Event != "NFP" {
		t.Errorf("not newest-first: %+v", got)
	}

	both, _ := s.ForCurrencies(ctx, "USD", "EUR")
	if len(both) != 3 {
		t.Errorf("USD+EUR releases = %d, want 3", len(both))
	}
}

func TestMemoryReleaseStoreEvictsAged(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := NewMemoryReleaseStore(14*24*time.Hour, 0).(*MemoryReleaseStore)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if err := s.Put(ctx, []models.EconomicRelease{
		rel("USD", "CPI", 20*24*time.Hour, now),
		rel("USD", "NFP", time.Hour, now),
	}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if n, _ := s.Len(ctx); n != 1 {
		t.Errorf("Len = %d, want 1 after age eviction", n)
	}
	got, _ := s.ForCurrencies(ctx, "USD")
	if len(got) != 1 || got[0].Event != "NFP" {
		t.Errorf("aged release leaked: %+v", got)
	}
}

func TestMemoryReleaseStoreCap(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := NewMemoryReleaseStore(0, 3).(*MemoryReleaseStore)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	var rels []models.EconomicRelease
	for i := 0; i < 5; i++ {
		rels = append(rels, rel("USD", "Jobless Claims", time.Duration(i)*time.Hour, now))
	}
	// Distinct timestamps make each a separate key.
	rels[1].Event, rels[2].Event, rels[3].Event, rels[4].Event = "CPI", "NFP", "GDP", "PMI"
	if err := s.Put(ctx, rels); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if n, _ := s.Len(ctx); n != 3 {
		t.Errorf("Len = %d, want cap of 3", n)
	}
	got, _ := s.ForCurrencies(ctx, "USD")
	if len(got) != 3 || got[0].Event != "Jobless Claims" {
		t.Errorf("newest should survive cap: %+v", got)
	}
}

func TestMemoryReleaseStoreRejectsIncomplete(t *testing.T) {
	s := NewMemoryReleaseStore(0, 0)
	err := s.Put(context.Background(), []models.EconomicRelease{{Currency: "USD"}})
	if err == nil {
		t.Error("expected error for release without event/time")
	}
}

func TestMemoryReleaseStoreHonorsContext(t *testing.T) {
	s := NewMemoryReleaseStore(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Put(ctx, nil); err == nil {
		t.Error("expected context error on Put")
	}
	if _, err := s.ForCurrencies(ctx, "USD"); err == nil {
		t.Error("expected context error on ForCurrencies")
	}
}
