package matcher

import (
	"fmt"
	"time"

	"vkrishnan/ledger-match/internal/models"
)

// Reinforce records a user correction in the learned-mapping store and
// returns the entry as written, so callers can mirror it into a session
// cache (write-through: the external store is updated first).
//
// First correction inserts with score max(observedScore, 80) and usage
// count 1. Repeat corrections bump the usage count and recompute the score
// as max(observedScore, 75) + 2 per use, capped at 95. Repeated identical
// calls keep climbing count and score toward the cap; that is deliberate
// reinforcement behavior, not idempotence.
func Reinforce(store LearnedStore, narrationKey, ledger string, observedScore float64) (models.LearnedMapping, error) {
	existing, ok, err := store.Get(narrationKey)
	if err != nil {
		return models.LearnedMapping{}, fmt.Errorf("reading learned mapping: %w", err)
	}

	var entry models.LearnedMapping
	if !ok {
		score := observedScore
		if score < 80 {
			score = 80
		}
		entry = models.LearnedMapping{
			Ledger:     ledger,
			Score:      score,
			UsageCount: 1,
			LastUsed:   time.Now(),
		}
	} else {
		base := observedScore
		if base < 75 {
			base = 75
		}
		newCount := existing.UsageCount + 1
		newScore := base + float64(newCount)*2
		if newScore > 95 {
			newScore = 95
		}
		// The mapped ledger of an existing key is kept as-is; repeat
		// corrections reinforce, they do not remap.
		entry = models.LearnedMapping{
			Ledger:     existing.Ledger,
			Score:      newScore,
			UsageCount: newCount,
			LastUsed:   time.Now(),
		}
	}

	if err := store.Put(narrationKey, entry); err != nil {
		return models.LearnedMapping{}, fmt.Errorf("writing learned mapping: %w", err)
	}
	return entry, nil
}
