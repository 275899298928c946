package matcher

import (
	"context"
	"strings"

	"vkrishnan/ledger-match/internal/models"
	"vkrishnan/ledger-match/internal/textutils"
)

// categoryLedgerKeywords selects ledgers by detected category in the
// keyword sub-cascade. Looked up by category name, so map iteration order
// never matters.
var categoryLedgerKeywords = map[string][]string{
	"salary":        {"salary", "employee", "payroll", "staff"},
	"food":          {"food", "meal", "restaurant", "cafe", "dining"},
	"travel":        {"travel", "transport", "taxi", "uber", "fuel", "conveyance"},
	"shopping":      {"shopping", "store", "market", "purchase", "supplies"},
	"utilities":     {"electricity", "water", "gas", "utility", "bill", "telephone"},
	"entertainment": {"entertainment", "movie", "cinema", "recreation"},
	"healthcare":    {"medical", "hospital", "clinic", "health", "medicine"},
	"education":     {"education", "school", "college", "tuition", "books"},
	"vendor":        {"vendor", "supplier", "contractor", "service"},
	"client":        {"client", "customer", "debtor"},
	"income":        {"salary", "income", "revenue", "commission", "interest"},
}

// keywordStrategy is the stage-four sub-cascade: name-priority matching,
// then category lookup, then substring containment, then word overlap,
// then a fuzzy closest-match sweep. First hit wins.
type keywordStrategy struct {
	categories []models.CategoryConfig
	minScore   float64
}

func (keywordStrategy) Name() string { return "keyword_match" }

func (s keywordStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	ledger, score := s.match(narration, req.LedgerMaster)
	if ledger == "" || score < s.minScore {
		return models.MatchResult{}, false, nil
	}
	return models.MatchResult{
		Ledger:     ledger,
		Confidence: score,
		Strategy:   models.StrategyKeywordMatch,
	}, true, nil
}

func (s keywordStrategy) match(narration string, ledgerMaster []string) (string, float64) {
	if narration == "" || len(ledgerMaster) == 0 {
		return "", 0
	}

	clean := textutils.Normalize(narration)
	extractedName, isPerson := textutils.IdentifyPersonOrCompany(narration)
	category := Categorize(narration, s.categories)

	// Name-priority: a person/company narration whose extracted name lines
	// up with a ledger name beats everything else in this stage.
	if extractedName != "" && isPerson {
		for _, ledger := range ledgerMaster {
			cleanLedger := textutils.Normalize(ledger)
			if cleanLedger == "" {
				continue
			}

			nameSimilarity := StringSimilarity(extractedName, cleanLedger)
			if nameSimilarity > 0.6 {
				score := nameSimilarity * 100
				if score > 95 {
					score = 95
				}
				return ledger, score
			}

			if strings.Contains(cleanLedger, extractedName) || strings.Contains(extractedName, cleanLedger) {
				return ledger, 90
			}
		}
	}

	// Category lookup against raw ledger names.
	for _, keyword := range categoryLedgerKeywords[category] {
		for _, ledger := range ledgerMaster {
			if strings.Contains(strings.ToLower(ledger), keyword) {
				return ledger, 80
			}
		}
	}

	// Whole normalized ledger name contained in the narration.
	for _, ledger := range ledgerMaster {
		cleanLedger := textutils.Normalize(ledger)
		if cleanLedger != "" && strings.Contains(clean, cleanLedger) {
			return ledger, 85
		}
	}

	// Largest nonzero word overlap.
	narrationWords := fieldSet(strings.ToLower(clean))
	bestOverlap := 0
	bestLedger := ""
	for _, ledger := range ledgerMaster {
		cleanLedger := textutils.Normalize(ledger)
		if cleanLedger == "" {
			continue
		}
		overlap := 0
		for _, w := range strings.Fields(strings.ToLower(cleanLedger)) {
			if narrationWords[w] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestLedger = ledger
		}
	}
	if bestLedger != "" {
		confidence := float64(bestOverlap) * 30
		if confidence > 75 {
			confidence = 75
		}
		return bestLedger, confidence
	}

	// Fuzzy closest-match sweep over the whole master.
	if match, ok := closestMatch(clean, ledgerMaster, 0.5); ok {
		return match, 65
	}

	return "", 0
}

// focusStrategy is the ledger-name focus stage: keyword-index overlap and
// name similarity against the expanded ledger index.
type focusStrategy struct {
	m        *Matcher
	minScore float64
}

func (focusStrategy) Name() string { return "ledger_name_focus" }

func (s focusStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	ledger, score := FocusMatch(narration, s.m.keywordIndex(req.LedgerMaster))
	if ledger == "" || score < s.minScore {
		return models.MatchResult{}, false, nil
	}
	return models.MatchResult{
		Ledger:     ledger,
		Confidence: score,
		Strategy:   models.StrategyLedgerNameFocus,
	}, true, nil
}
