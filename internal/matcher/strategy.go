// Package matcher implements the narration-to-ledger resolution engine: an
// ordered cascade of heuristic strategies (exact learned memory, keyword
// rules, fuzzy and semantic similarity, categorical fallback) with
// confidence scoring. The suspense ledger is the terminal safety net, so
// every narration always receives some ledger.
package matcher

import (
	"context"

	"vkrishnan/ledger-match/internal/models"
)

// Request carries the per-resolution inputs. All fields are owned by the
// caller; the engine never mutates them.
type Request struct {
	// LedgerMaster is the ordered ledger-name list for the user scope.
	// May be empty; resolution then falls through to the suspense ledger.
	LedgerMaster []string

	// Rules are user-authored keyword rules, evaluated in order.
	Rules []models.Rule

	// SuspenseLedger is the terminal fallback for unresolvable narrations.
	SuspenseLedger string

	// Learned holds the persisted narration-to-ledger reinforcement data,
	// keyed by exact narration text.
	Learned map[string]models.LearnedMapping
}

// Strategy is one matching heuristic in the cascade. The first strategy
// that reports found wins; later stages are never consulted.
type Strategy interface {
	// Match attempts to resolve the narration. A false found with a nil
	// error means the strategy simply did not apply.
	Match(ctx context.Context, narration string, req Request) (models.MatchResult, bool, error)

	// Name returns the strategy name for logging and diagnostics.
	Name() string
}
