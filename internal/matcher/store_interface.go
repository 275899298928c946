package matcher

import "vkrishnan/ledger-match/internal/models"

// LearnedStore is the persistence contract for narration-to-ledger
// reinforcement data, keyed by exact narration text per user scope. The
// engine performs no I/O of its own; only the reinforcement write path
// touches a store.
type LearnedStore interface {
	// Get returns the entry for a narration key, if present.
	Get(narrationKey string) (models.LearnedMapping, bool, error)

	// Put inserts or replaces the entry for a narration key.
	Put(narrationKey string, mapping models.LearnedMapping) error

	// All returns every stored entry keyed by narration text.
	All() (map[string]models.LearnedMapping, error)
}
