package matcher

import (
	"context"

	"vkrishnan/ledger-match/internal/models"
)

// learnedExactStrategy resolves narrations that exactly match a learned
// mapping key. Keys are raw narration text; exact memory is maximally
// trustworthy and short-circuits everything else.
type learnedExactStrategy struct{}

func (learnedExactStrategy) Name() string { return "learned_exact" }

func (learnedExactStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	entry, ok := req.Learned[narration]
	if !ok {
		return models.MatchResult{}, false, nil
	}
	return models.MatchResult{
		Ledger:     entry.Ledger,
		Confidence: 95,
		Strategy:   models.StrategyLearnedExact,
	}, true, nil
}

// learnedSimilarStrategy resolves against learned mappings whose keys are
// merely similar to the narration, boosting by usage count and stored
// score so frequently confirmed mappings win.
type learnedSimilarStrategy struct {
	minBoost float64
}

func (learnedSimilarStrategy) Name() string { return "learned_similar" }

func (s learnedSimilarStrategy) Match(_ context.Context, narration string, req Request) (models.MatchResult, bool, error) {
	bestScore := 0.0
	bestLedger := ""

	for key, entry := range req.Learned {
		similarity := StringSimilarity(narration, key)
		boosted := similarity*100 + float64(entry.UsageCount)*2 + entry.Score*0.1

		if boosted > bestScore && boosted >= s.minBoost {
			bestScore = boosted
			bestLedger = entry.Ledger
		}
	}

	if bestLedger == "" {
		return models.MatchResult{}, false, nil
	}
	if bestScore > 85 {
		bestScore = 85
	}
	return models.MatchResult{
		Ledger:     bestLedger,
		Confidence: bestScore,
		Strategy:   models.StrategyLearnedSimilar,
	}, true, nil
}
