package fundamentals

import (
	"strings"
	"testing"
	"time"

	"FxRater/internal/domain/models"
)

func TestCanonicalEvent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Core CPI m/m", EventCoreCPI, true},
		{"Core Inflation Rate YoY", EventCoreCPI, true},
		{"CPI y/y", EventCPI, true},
		{"Consumer Price Index", EventCPI, true},
		{"PCE Price Index", EventPCE, true},
		{"Non-Farm Employment Change", EventNFP, true},
		{"NFP", EventNFP, true},
		{"Average Payrolls", EventNFP, true},
		{"Unemployment Claims", EventJoblessClaims, true},
		{"Initial Jobless Claims", EventJoblessClaims, true},
		{"Unemployment Rate", EventUnemployment, true},
		{"FOMC Statement", EventRateDecision, true},
		{"Federal Funds Rate", EventRateDecision, true},
		{"ISM Manufacturing PMI", EventPMIManuf, true},
		{"Services PMI Flash", EventPMIServices, true},
		{"GDP Growth Rate QoQ", EventGDP, true},
		{"Retail Sales m/m", EventRetailSales, true},
		{"Crude Oil Inventories", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalEvent(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CanonicalEvent(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func validInput(now time.Time) models.FundamentalsInput {
	return models.FundamentalsInput{
		BaseCcy:  "eur",
		QuoteCcy: "USD",
		Releases: []models.RawRelease{
			{Currency: "USD", Event: "CPI y/y", Time: now.Add(-48 * time.Hour).Format(time.RFC3339),
				Actual: 3.0, Forecast: 2.8, Previous: 3.1},
			{Currency: "usd", Event: "Unemployment Rate", Time: now.Add(-24 * time.Hour).Format(time.RFC3339),
				Actual: "3.9", Forecast: "4.0"},
		},
	}
}

func TestNormalizeHappyPath(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	res := Normalize(validInput(now), now)

	if !res.OK {
		t.Fatalf("expected ok, issues: %v", res.Issues)
	}
	if res.Cleaned.BaseCcy != "EUR" || res.Cleaned.QuoteCcy != "USD" {
		t.Errorf("currencies not upper-cased: %+v", res.Cleaned)
	}
	if len(res.Cleaned.Releases) != 2 {
		t.Fatalf("retained %d releases, want 2", len(res.Cleaned.Releases))
	}
	// Newest first.
	if res.Cleaned.Releases[0].Event != EventUnemployment {
		t.Errorf("releases not sorted newest-first: %+v", res.Cleaned.Releases)
	}
	// String numerics coerced.
	if res.Cleaned.Releases[0].Actual != 3.9 {
		t.Errorf("string actual not coerced: %v", res.Cleaned.Releases[0].Actual)
	}
	if res.Cleaned.Releases[0].Previous != nil {
		t.Error("missing previous should stay nil")
	}
}

func TestNormalizeDropsStaleRelease(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	in := validInput(now)
	in.Releases = append(in.Releases, models.RawRelease{
		Currency: "USD", Event: "GDP", Time: now.Add(-20 * 24 * time.Hour).Format(time.RFC3339), Actual: 2.1,
	})

	res := Normalize(in, now)
	if res.OK {
		t.Error("a recorded issue must force ok=false")
	}
	if len(res.Cleaned.Releases) != 2 {
		t.Errorf("stale release should be dropped, kept %d", len(res.Cleaned.Releases))
	}
	found := false
	for _, issue := range res.Issues {
		if strings.Contains(issue, "outside 14-day window") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing window issue, got %v", res.Issues)
	}

	// Excluding the stale release up front keeps the batch clean.
	if res := Normalize(validInput(now), now); !res.OK {
		t.Errorf("valid remainder should still be ok, issues: %v", res.Issues)
	}
}

func TestNormalizeDropReasons(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		release models.RawRelease
		issue   string
	}{
		{"unknown currency", models.RawRelease{Currency: "TRY", Event: "CPI", Time: now.Format(time.RFC3339), Actual: 1.0}, "unknown currency"},
		{"unrecognized event", models.RawRelease{Currency: "USD", Event: "Moon Phase", Time: now.Format(time.RFC3339), Actual: 1.0}, "unrecognized event"},
		{"bad timestamp", models.RawRelease{Currency: "USD", Event: "CPI", Time: "yesterday", Actual: 1.0}, "invalid timestamp"},
		{"non-numeric actual", models.RawRelease{Currency: "USD", Event: "CPI", Time: now.Format(time.RFC3339), Actual: "n/a"}, "non-numeric actual"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(now)
			in.Releases = append(in.Releases, tt.release)
			res := Normalize(in, now)
			if res.OK {
				t.Error("expected ok=false")
			}
			if len(res.Cleaned.Releases) != 2 {
				t.Errorf("bad release should be dropped, kept %d", len(res.Cleaned.Releases))
			}
			found := false
			for _, issue := range res.Issues {
				if strings.Contains(issue, tt.issue) {
					found = true
				}
			}
			if !found {
				t.Errorf("want issue containing %q, got %v", tt.issue, res.Issues)
			}
		})
	}
}

func TestNormalizeInvalidPair(t *testing.T) {
	now := time.Now().UTC()
	in := validInput(now)
	in.QuoteCcy = "XAU"
	if res := Normalize(in, now); res.OK {
		t.Error("non-major quote currency must fail validation")
	}

	in = validInput(now)
	in.BaseCcy, in.QuoteCcy = "USD", "usd"
	if res := Normalize(in, now); res.OK {
		t.Error("identical base and quote must fail validation")
	}
}

func TestNormalizeCapsBatch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	in := models.FundamentalsInput{BaseCcy: "EUR", QuoteCcy: "USD"}
	for i := 0; i < MaxReleases+5; i++ {
		in.Releases = append(in.Releases, models.RawRelease{
			Currency: "USD",
			Event:    "Jobless Claims",
			Time:     now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			Actual:   float64(200 + i),
		})
	}
	res := Normalize(in, now)
	if len(res.Cleaned.Releases) != MaxReleases {
		t.Fatalf("kept %d releases, want cap of %d", len(res.Cleaned.Releases), MaxReleases)
	}
	if res.OK {
		t.Error("truncation records an issue, so ok must be false")
	}
	// The newest survive the cap.
	if res.Cleaned.Releases[0].Actual != 200 {
		t.Errorf("newest release should survive, got %+v", res.Cleaned.Releases[0])
	}
}

func TestNormalizeDroppedCountsReleasesOnly(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	in := validInput(now)
	in.QuoteCcy = "XAU"
	in.Releases = append(in.Releases, models.RawRelease{
		Currency: "TRY", Event: "CPI", Time: now.Format(time.RFC3339), Actual: 1.0,
	})

	res := Normalize(in, now)
	if len(res.Issues) != 2 {
		t.Fatalf("want pair issue plus release issue, got %v", res.Issues)
	}
	if res.Dropped != 1 {
		t.Errorf("only the rejected release counts as dropped, got %d", res.Dropped)
	}

	// Truncation trims but does not drop.
	in = models.FundamentalsInput{BaseCcy: "EUR", QuoteCcy: "USD"}
	for i := 0; i < MaxReleases+5; i++ {
		in.Releases = append(in.Releases, models.RawRelease{
			Currency: "USD",
			Event:    "Jobless Claims",
			Time:     now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			Actual:   float64(200 + i),
		})
	}
	if res := Normalize(in, now); res.Dropped != 0 {
		t.Errorf("truncation must not count as dropped, got %d", res.Dropped)
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3.2, 3.2, true},
		{int(7), 7, true},
		{"2.75", 2.75, true},
		{"3.5%", 3.5, true},
		{" 1.0 ", 1, true},
		{"", 0, false},
		{"n/a", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := toNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("toNumber(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
