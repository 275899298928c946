package matcher

import (
	"context"
	"strings"

	"vkrishnan/ledger-match/internal/models"
	"vkrishnan/ledger-match/internal/textutils"
)

// categoryFallbackLedgers selects a best-effort ledger once every
// similarity stage has failed. Categories without an entry here (and
// "other") produce no fallback.
var categoryFallbackLedgers = map[string][]string{
	"salary":    {"salary", "employee", "staff"},
	"food":      {"food", "meal", "restaurant"},
	"travel":    {"travel", "transport", "fuel", "conveyance"},
	"shopping":  {"purchase", "expense", "general", "supplies"},
	"utilities": {"electricity", "water", "utility", "telephone"},
	"vendor":    {"vendor", "supplier", "contractor"},
	"client":    {"client", "customer", "debtor"},
	"income":    {"salary", "income", "revenue"},
}

// categoryFallbackStrategy picks the first ledger in master order whose
// name contains any keyword of the detected category.
type categoryFallbackStrategy struct {
	categories []models.CategoryConfig
}

func (categoryFallbackStrategy) Name() string { return "category_fallback" }

func (s categoryFallbackStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	category := Categorize(narration, s.categories)
	keywords := categoryFallbackLedgers[category]
	if len(keywords) == 0 {
		return models.MatchResult{}, false, nil
	}

	for _, ledger := range req.LedgerMaster {
		lower := strings.ToLower(ledger)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return models.MatchResult{
					Ledger:     ledger,
					Confidence: 60,
					Strategy:   models.StrategyCategoryPrefix + category,
				}, true, nil
			}
		}
	}

	return models.MatchResult{}, false, nil
}

// nameFallbackStrategy matches an extracted person/company name against
// ledger names by plain containment.
type nameFallbackStrategy struct{}

func (nameFallbackStrategy) Name() string { return "name_fallback" }

func (nameFallbackStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	extractedName, isPerson := textutils.IdentifyPersonOrCompany(narration)
	if extractedName == "" || !isPerson {
		return models.MatchResult{}, false, nil
	}

	lowerName := strings.ToLower(extractedName)
	for _, ledger := range req.LedgerMaster {
		if strings.Contains(strings.ToLower(ledger), lowerName) {
			return models.MatchResult{
				Ledger:     ledger,
				Confidence: 55,
				Strategy:   models.StrategyNameFallback,
			}, true, nil
		}
	}

	return models.MatchResult{}, false, nil
}

// defaultStrategy is the terminal safety net: it always matches, mapping
// the narration to the suspense ledger with zero confidence.
type defaultStrategy struct{}

func (defaultStrategy) Name() string { return "default" }

func (defaultStrategy) Match(_ context.Context, _ string, req Request) (models.MatchResult, bool, error) {
	return models.MatchResult{
		Ledger:     req.SuspenseLedger,
		Confidence: 0,
		Strategy:   models.StrategyDefault,
	}, true, nil
}
