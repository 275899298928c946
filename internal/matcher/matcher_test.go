package matcher_test

import (
	"context"
	"testing"

	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/matcher"
	"vkrishnan/ledger-match/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *matcher.Matcher {
	return matcher.NewMatcher(nil, nil, logging.NewMockLogger(), matcher.DefaultOptions())
}

func testRequest() matcher.Request {
	return matcher.Request{
		LedgerMaster: []string{
			"John Doe Salary A/c",
			"Fuel Expenses A/c",
			"Rent A/c",
			"Office Supplies A/c",
		},
		SuspenseLedger: "Suspense A/c",
	}
}

func TestResolveSalaryNarration(t *testing.T) {
	m := newTestMatcher()

	result := m.Resolve(context.Background(), "UPI-JOHN DOE-SALARY APR", testRequest())

	assert.Equal(t, "John Doe Salary A/c", result.Ledger)
	assert.Equal(t, models.StrategyKeywordMatch, result.Strategy)
	assert.GreaterOrEqual(t, result.Confidence, 80.0)
}

func TestResolveFuelNarrationViaSynonym(t *testing.T) {
	m := newTestMatcher()

	result := m.Resolve(context.Background(), "PETROL PUMP PAYMENT XYZ123", testRequest())

	assert.Equal(t, "Fuel Expenses A/c", result.Ledger)
	assert.Equal(t, models.StrategyKeywordMatch, result.Strategy)
	assert.GreaterOrEqual(t, result.Confidence, 50.0)
}

func TestResolveUnmatchableGoesToSuspense(t *testing.T) {
	m := newTestMatcher()

	result := m.Resolve(context.Background(), "ZZZXQ19284", testRequest())

	assert.Equal(t, "Suspense A/c", result.Ledger)
	assert.Equal(t, models.StrategyDefault, result.Strategy)
	assert.Zero(t, result.Confidence)
}

func TestResolveEmptyLedgerMaster(t *testing.T) {
	m := newTestMatcher()
	req := matcher.Request{SuspenseLedger: "Suspense A/c"}

	result := m.Resolve(context.Background(), "OFFICE RENT PAID", req)

	assert.Equal(t, "Suspense A/c", result.Ledger)
	assert.Equal(t, models.StrategyDefault, result.Strategy)
}

func TestLearnedExactBeatsRule(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Rules = []models.Rule{{Keyword: "rent", Ledger: "Office Supplies A/c"}}
	req.Learned = map[string]models.LearnedMapping{
		"OFFICE RENT PAID": {Ledger: "Rent A/c", Score: 90, UsageCount: 4},
	}

	result := m.Resolve(context.Background(), "OFFICE RENT PAID", req)

	assert.Equal(t, "Rent A/c", result.Ledger)
	assert.Equal(t, models.StrategyLearnedExact, result.Strategy)
	assert.Equal(t, 95.0, result.Confidence)
}

func TestLearnedExactUsesRawNarrationKey(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	// The key carries transaction noise that normalization would strip;
	// exact memory must still win over a conflicting rule.
	req.Learned = map[string]models.LearnedMapping{
		"UPI-JOHN DOE-SALARY APR": {Ledger: "John Doe Salary A/c", Score: 90, UsageCount: 2},
	}
	req.Rules = []models.Rule{{Keyword: "salary", Ledger: "Rent A/c"}}

	result := m.Resolve(context.Background(), "UPI-JOHN DOE-SALARY APR", req)

	assert.Equal(t, "John Doe Salary A/c", result.Ledger)
	assert.Equal(t, models.StrategyLearnedExact, result.Strategy)
	assert.Equal(t, 95.0, result.Confidence)
}

func TestRuleMatch(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Rules = []models.Rule{{Keyword: "office rent", Ledger: "Rent A/c"}}

	result := m.Resolve(context.Background(), "OFFICE RENT PAID", req)

	assert.Equal(t, "Rent A/c", result.Ledger)
	assert.Equal(t, models.StrategyRule, result.Strategy)
	assert.Equal(t, 90.0, result.Confidence)
}

func TestRuleOrderWins(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Rules = []models.Rule{
		{Keyword: "rent", Ledger: "Rent A/c"},
		{Keyword: "rent paid", Ledger: "Office Supplies A/c"},
	}

	result := m.Resolve(context.Background(), "OFFICE RENT PAID", req)

	assert.Equal(t, "Rent A/c", result.Ledger, "first matching rule must win regardless of specificity")
}

func TestLearnedSimilarMatch(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Learned = map[string]models.LearnedMapping{
		"OFFICE RENT PAID": {Ledger: "Rent A/c", Score: 85, UsageCount: 3},
	}

	// Misspelled variant: not an exact key, but well above the boost floor.
	result := m.Resolve(context.Background(), "OFFICE RENT PAYED", req)

	assert.Equal(t, "Rent A/c", result.Ledger)
	assert.Equal(t, models.StrategyLearnedSimilar, result.Strategy)
	assert.Equal(t, 85.0, result.Confidence, "boosted score is capped at 85")
}

func TestResolveWithTrace(t *testing.T) {
	m := newTestMatcher()

	result, trace := m.ResolveWithTrace(context.Background(), "ZZZXQ19284", testRequest())

	assert.Equal(t, "Suspense A/c", result.Ledger)
	require.NotEmpty(t, trace)

	last := trace[len(trace)-1]
	assert.Equal(t, "default", last.Strategy)
	assert.True(t, last.Found)
	assert.Contains(t, trace.Summary(), "default:success")
	assert.Empty(t, trace.Errors())
}

func TestSuggestions(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Rules = []models.Rule{{Keyword: "rent", Ledger: "Rent A/c"}}

	narrations := []string{
		"OFFICE RENT PAID",
		"OFFICE RENT PAID", // duplicate resolves once
		"",                 // missing narration
		"ZZZXQ19284",
	}

	results := m.Suggestions(context.Background(), narrations, req)

	require.Len(t, results, 3)
	assert.Equal(t, "Rent A/c", results["OFFICE RENT PAID"].Ledger)
	assert.Equal(t, "Suspense A/c", results["ZZZXQ19284"].Ledger)

	missing, ok := results[matcher.MissingNarrationKey]
	require.True(t, ok, "rows without narration aggregate under the reserved key")
	assert.Equal(t, "Suspense A/c", missing.Ledger)
	assert.Zero(t, missing.Confidence)
	assert.Equal(t, models.StrategyDefault, missing.Strategy)
}

func TestAutoMap(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Rules = []models.Rule{{Keyword: "fuel", Ledger: "Fuel Expenses A/c"}}
	req.Learned = map[string]models.LearnedMapping{
		"OFFICE RENT PAID": {Ledger: "Rent A/c", Score: 90, UsageCount: 2},
	}

	results := m.AutoMap([]string{
		"OFFICE RENT PAID", // exact learned
		"FUEL STATION",     // rule
		"PETROL PUMP XYZ",  // neither: heuristics are deliberately excluded
		"",
	}, req)

	assert.Equal(t, "Rent A/c", results["OFFICE RENT PAID"])
	assert.Equal(t, "Fuel Expenses A/c", results["FUEL STATION"])
	assert.Equal(t, "Suspense A/c", results["PETROL PUMP XYZ"])
	assert.Equal(t, "Suspense A/c", results[matcher.MissingNarrationKey])
}

func TestAutoMapSimilarLearned(t *testing.T) {
	m := newTestMatcher()
	req := testRequest()
	req.Learned = map[string]models.LearnedMapping{
		"OFFICE RENT PAID": {Ledger: "Rent A/c", Score: 90, UsageCount: 2},
	}

	results := m.AutoMap([]string{"OFFICE RENT PAYED"}, req)

	assert.Equal(t, "Rent A/c", results["OFFICE RENT PAYED"])
}
