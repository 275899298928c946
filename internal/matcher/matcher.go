package matcher

import (
	"context"
	"strings"
	"sync"

	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/models"
)

// MissingNarrationKey is the reserved key under which rows without a
// usable narration are aggregated in batch output. They map to the
// suspense ledger with zero confidence.
const MissingNarrationKey = "__MISSING__"

// Options carries the per-stage acceptance thresholds and feature toggles
// for the cascade. Zero values are not meaningful; start from
// DefaultOptions.
type Options struct {
	// MinKeywordScore is the acceptance floor for the keyword sub-cascade.
	MinKeywordScore float64

	// MinFocusScore is the acceptance floor for the ledger-name focus stage.
	MinFocusScore float64

	// MinLearnedBoost is the floor on the boosted similar-learned score.
	MinLearnedBoost float64

	// SemanticThreshold is the cosine-similarity floor for a semantic hit.
	SemanticThreshold float64

	// MinSemanticScore is the floor on the accepted semantic score (0-100).
	MinSemanticScore float64

	// EnableSemantic turns the semantic stage on when a backend is present.
	EnableSemantic bool

	// AutoMapSimilarity is the similarity cutoff used by AutoMap's
	// similar-learned pass.
	AutoMapSimilarity float64
}

// DefaultOptions returns the standard cascade thresholds.
func DefaultOptions() Options {
	return Options{
		MinKeywordScore:   50,
		MinFocusScore:     55,
		MinLearnedBoost:   60,
		SemanticThreshold: 0.3,
		MinSemanticScore:  35,
		EnableSemantic:    false,
		AutoMapSimilarity: 0.7,
	}
}

// Matcher runs the ordered strategy cascade over narrations. One Matcher
// serves one user scope: its keyword-index and embedding caches are
// derived from that scope's ledger master and must not be shared across
// users.
type Matcher struct {
	opts       Options
	categories []models.CategoryConfig
	client     EmbeddingClient
	log        logging.Logger

	strategies []Strategy

	mu         sync.Mutex
	indexHash  uint64
	index      []LedgerKeywordEntry
	embeddings *embeddingCache
}

// NewMatcher creates a Matcher. client may be nil (semantic stage is
// skipped); categories may be nil (built-in table is used).
func NewMatcher(client EmbeddingClient, categories []models.CategoryConfig, logger logging.Logger, opts Options) *Matcher {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	m := &Matcher{
		opts:       opts,
		categories: categories,
		client:     client,
		log:        logger,
	}

	m.strategies = []Strategy{
		learnedExactStrategy{},
		ruleStrategy{},
		learnedSimilarStrategy{minBoost: opts.MinLearnedBoost},
		keywordStrategy{categories: categories, minScore: opts.MinKeywordScore},
		focusStrategy{m: m, minScore: opts.MinFocusScore},
	}
	if opts.EnableSemantic && client != nil {
		m.strategies = append(m.strategies, semanticStrategy{
			m:         m,
			threshold: opts.SemanticThreshold,
			minScore:  opts.MinSemanticScore,
		})
	}
	m.strategies = append(m.strategies,
		categoryFallbackStrategy{categories: categories},
		nameFallbackStrategy{},
		defaultStrategy{},
	)

	return m
}

// Resolve runs the cascade for one narration and returns the suggested
// ledger, a 0-100 confidence and the strategy tag that produced it. It
// never fails: the suspense ledger is the guaranteed terminal result.
func (m *Matcher) Resolve(ctx context.Context, narration string, req Request) models.MatchResult {
	result, _ := m.ResolveWithTrace(ctx, narration, req)
	return result
}

// ResolveWithTrace is Resolve plus the per-strategy attempt record.
func (m *Matcher) ResolveWithTrace(ctx context.Context, narration string, req Request) (models.MatchResult, Trace) {
	trace := make(Trace, 0, len(m.strategies))

	for _, strategy := range m.strategies {
		result, found, err := strategy.Match(ctx, narration, req)
		trace = append(trace, Attempt{Strategy: strategy.Name(), Found: found, Err: err})
		if err != nil {
			m.log.WithError(err).WithField("strategy", strategy.Name()).
				Warn("strategy failed, continuing cascade")
			continue
		}
		if found {
			m.log.Debug("narration resolved",
				logging.Field{Key: "strategy", Value: result.Strategy},
				logging.Field{Key: "ledger", Value: result.Ledger},
				logging.Field{Key: "confidence", Value: result.Confidence})
			return result, trace
		}
	}

	// Unreachable while defaultStrategy terminates the cascade.
	return models.MatchResult{
		Ledger:   req.SuspenseLedger,
		Strategy: models.StrategyDefault,
	}, trace
}

// Suggestions resolves a batch of narrations. Every input narration gets
// exactly one output entry; rows without a usable narration are aggregated
// under MissingNarrationKey and mapped to the suspense ledger.
func (m *Matcher) Suggestions(ctx context.Context, narrations []string, req Request) map[string]models.MatchResult {
	out := make(map[string]models.MatchResult, len(narrations))
	missing := false

	for _, narration := range narrations {
		if strings.TrimSpace(narration) == "" {
			missing = true
			continue
		}
		if _, done := out[narration]; done {
			continue
		}
		out[narration] = m.Resolve(ctx, narration, req)
	}

	if missing {
		out[MissingNarrationKey] = models.MatchResult{
			Ledger:     req.SuspenseLedger,
			Confidence: 0,
			Strategy:   models.StrategyDefault,
		}
	}

	return out
}

// AutoMap is the fast mapping path used for bulk application of trusted
// knowledge only: exact learned mappings, rules, then similar learned
// mappings above the configured cutoff; everything else goes to suspense.
func (m *Matcher) AutoMap(narrations []string, req Request) map[string]string {
	out := make(map[string]string, len(narrations))
	missing := false

	for _, narration := range narrations {
		if strings.TrimSpace(narration) == "" {
			missing = true
			continue
		}

		if entry, ok := req.Learned[narration]; ok {
			out[narration] = entry.Ledger
			continue
		}

		if result, found, _ := (ruleStrategy{}).Match(context.Background(), narration, req); found {
			out[narration] = result.Ledger
			continue
		}

		bestSimilarity := 0.0
		bestLedger := ""
		for key, entry := range req.Learned {
			similarity := StringSimilarity(narration, key)
			if similarity > bestSimilarity && similarity >= m.opts.AutoMapSimilarity {
				bestSimilarity = similarity
				bestLedger = entry.Ledger
			}
		}
		if bestLedger != "" {
			out[narration] = bestLedger
			continue
		}

		out[narration] = req.SuspenseLedger
	}

	if missing {
		out[MissingNarrationKey] = req.SuspenseLedger
	}

	return out
}

// keywordIndex returns the cached keyword index for the ledger master,
// rebuilding it only when the master content changes.
func (m *Matcher) keywordIndex(ledgerMaster []string) []LedgerKeywordEntry {
	hash := masterHash(ledgerMaster)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index != nil && m.indexHash == hash {
		return m.index
	}
	m.index = BuildIndex(ledgerMaster)
	m.indexHash = hash
	return m.index
}
