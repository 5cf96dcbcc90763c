package fundamentals

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"FxRater/internal/domain/models"
	"FxRater/pkg/util"
)

const (
	// LookbackWindow is how far back a release may be dated and still count.
	LookbackWindow = 14 * 24 * time.Hour
	// MaxReleases caps the cleaned batch; oldest entries past the cap are
	// truncated after sorting.
	MaxReleases = 60
)

// Normalize sanitizes an untrusted fundamentals payload into the canonical
// taxonomy. It never fails: malformed releases are dropped with a recorded
// issue and the batch continues. OK requires zero issues, at least one
// retained release, and distinct valid base/quote currencies.
func Normalize(in models.FundamentalsInput, now time.Time) models.FundamentalsValidation {
	var res models.FundamentalsValidation

	res.Cleaned.BaseCcy = strings.ToUpper(strings.TrimSpace(in.BaseCcy))
	res.Cleaned.QuoteCcy = strings.ToUpper(strings.TrimSpace(in.QuoteCcy))

	baseOK := IsMajorCurrency(res.Cleaned.BaseCcy)
	quoteOK := IsMajorCurrency(res.Cleaned.QuoteCcy)
	if !baseOK {
		res.Issues = append(res.Issues, fmt.Sprintf("invalid base currency %q", in.BaseCcy))
	}
	if !quoteOK {
		res.Issues = append(res.Issues, fmt.Sprintf("invalid quote currency %q", in.QuoteCcy))
	}
	if baseOK && quoteOK && res.Cleaned.BaseCcy == res.Cleaned.QuoteCcy {
		res.Issues = append(res.Issues, fmt.Sprintf("base and quote currency are both %s", res.Cleaned.BaseCcy))
	}

	for i, raw := range in.Releases {
		rel, err := NormalizeRelease(raw, now)
		if err != nil {
			res.Issues = append(res.Issues, fmt.Sprintf("release %d: %s", i, err))
			res.Dropped++
			continue
		}
		res.Cleaned.Releases = append(res.Cleaned.Releases, rel)
	}

	sort.SliceStable(res.Cleaned.Releases, func(i, j int) bool {
		return res.Cleaned.Releases[i].Time.After(res.Cleaned.Releases[j].Time)
	})
	if len(res.Cleaned.Releases) > MaxReleases {
		res.Issues = append(res.Issues,
			fmt.Sprintf("truncated %d oldest releases beyond cap of %d", len(res.Cleaned.Releases)-MaxReleases, MaxReleases))
		res.Cleaned.Releases = res.Cleaned.Releases[:MaxReleases]
	}

	res.OK = len(res.Issues) == 0 && len(res.Cleaned.Releases) > 0
	return res
}

// NormalizeRelease sanitizes a single raw release: known currency, canonical
// event, RFC3339 timestamp inside the lookback window, numeric actual.
// Forecast and previous stay nil when absent or non-numeric.
func NormalizeRelease(raw models.RawRelease, now time.Time) (models.EconomicRelease, error) {
	ccy := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if !IsMajorCurrency(ccy) {
		return models.EconomicRelease{}, fmt.Errorf("unknown currency %q", raw.Currency)
	}
	event, ok := CanonicalEvent(raw.Event)
	if !ok {
		return models.EconomicRelease{}, fmt.Errorf("unrecognized event %q", raw.Event)
	}
	t, ok := util.ParseTime(raw.Time)
	if !ok {
		return models.EconomicRelease{}, fmt.Errorf("invalid timestamp %q", raw.Time)
	}
	if t.Before(now.Add(-LookbackWindow)) {
		return models.EconomicRelease{}, fmt.Errorf("%s: outside 14-day window", event)
	}
	actual, ok := toNumber(raw.Actual)
	if !ok {
		return models.EconomicRelease{}, fmt.Errorf("%s: non-numeric actual", event)
	}

	rel := models.EconomicRelease{
		Currency: ccy,
		Event:    event,
		Time:     t,
		Actual:   actual,
	}
	if f, ok := toNumber(raw.Forecast); ok {
		rel.Forecast = &f
	}
	if p, ok := toNumber(raw.Previous); ok {
		rel.Previous = &p
	}
	return rel, nil
}

// toNumber coerces the loose value shapes calendar feeds produce: numbers,
// numeric strings, json.Number. Anything else is null.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
