package matcher

import (
	"context"
	"strings"

	"vkrishnan/ledger-match/internal/models"
)

// ruleStrategy applies user-authored keyword rules. Rules are evaluated in
// list order; the first case-insensitive substring match wins, regardless
// of keyword length or specificity.
type ruleStrategy struct{}

func (ruleStrategy) Name() string { return "rule" }

func (ruleStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	lower := strings.ToLower(narration)

	for _, rule := range req.Rules {
		keyword := strings.ToLower(rule.Keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, keyword) {
			return models.MatchResult{
				Ledger:     rule.Ledger,
				Confidence: 90,
				Strategy:   models.StrategyRule,
			}, true, nil
		}
	}

	return models.MatchResult{}, false, nil
}
