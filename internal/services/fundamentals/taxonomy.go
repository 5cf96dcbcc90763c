package fundamentals

import "strings"

// Canonical event categories.
const (
	EventCPI           = "CPI"
	EventCoreCPI       = "Core CPI"
	EventPCE           = "PCE"
	EventNFP           = "NFP"
	EventUnemployment  = "Unemployment"
	EventJoblessClaims = "Jobless Claims"
	EventGDP           = "GDP"
	EventPMIManuf      = "PMI Manufacturing"
	EventPMIServices   = "PMI Services"
	EventRetailSales   = "Retail Sales"
	EventRateDecision  = "Rate Decision"
)

// majorCurrencies is the allow-set for release and pair currencies.
var majorCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CHF": true, "CAD": true, "AUD": true, "NZD": true,
}

// IsMajorCurrency reports whether ccy (already upper-cased) is one of the
// eight majors.
func IsMajorCurrency(ccy string) bool { return majorCurrencies[ccy] }

type eventRule struct {
	match     func(s string) bool
	canonical string
}

func anyOf(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

func allOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// eventRules maps free-text release names onto the canonical taxonomy.
// Evaluated in order, first match wins: specific rules (core CPI, claims)
// must fire before the broad ones they overlap with.
var eventRules = []eventRule{
	{allOf(anyOf("core"), anyOf("cpi", "inflation", "consumer price")), EventCoreCPI},
	{anyOf("pce", "personal consumption"), EventPCE},
	{anyOf("cpi", "consumer price", "inflation"), EventCPI},
	{anyOf("non-farm", "nonfarm", "nfp", "payroll"), EventNFP},
	{anyOf("jobless", "initial claims", "continuing claims", "unemployment claims"), EventJoblessClaims},
	{anyOf("unemployment"), EventUnemployment},
	{anyOf("fomc", "federal funds", "rate decision", "interest rate", "policy rate", "cash rate"), EventRateDecision},
	{allOf(anyOf("pmi", "purchasing managers", "ism"), anyOf("manufactur")), EventPMIManuf},
	{allOf(anyOf("pmi", "purchasing managers", "ism"), anyOf("servic", "non-manufactur")), EventPMIServices},
	{anyOf("gdp", "gross domestic"), EventGDP},
	{anyOf("retail sales", "retail"), EventRetailSales},
}

// CanonicalEvent normalizes a free-text event name to its canonical category.
func CanonicalEvent(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	for _, r := range eventRules {
		if r.match(s) {
			return r.canonical, true
		}
	}
	return "", false
}
