// Package models provides the data structures shared across the application.
package models

import "time"

// Strategy tags identify which matching heuristic produced a suggestion.
// They are stable identifiers used for diagnostics and audit output.
const (
	StrategyLearnedExact    = "learned_exact"
	StrategyRule            = "rule"
	StrategyLearnedSimilar  = "learned_similar"
	StrategyKeywordMatch    = "keyword_match"
	StrategyLedgerNameFocus = "ledger_name_focus"
	StrategySemanticAI      = "semantic_ai"
	StrategyNameFallback    = "name_fallback"
	StrategyDefault         = "default"

	// StrategyCategoryPrefix prefixes the detected category name when the
	// category fallback fires, e.g. "category_travel".
	StrategyCategoryPrefix = "category_"
)

// Rule maps a user-authored narration keyword to a ledger. Rules are
// evaluated in list order; the first case-insensitive substring match wins.
type Rule struct {
	Keyword string `yaml:"keyword" csv:"Narration Keyword"`
	Ledger  string `yaml:"ledger" csv:"Mapped Ledger"`
}

// LearnedMapping is a persisted narration-to-ledger association created
// from a user's manual correction. Score climbs with repeated use and is
// capped at 95; re-use never decreases it.
type LearnedMapping struct {
	Ledger     string    `yaml:"ledger"`
	Score      float64   `yaml:"score"`
	UsageCount int       `yaml:"usage_count"`
	LastUsed   time.Time `yaml:"last_used"`
}

// MatchResult is the outcome of resolving a single narration.
type MatchResult struct {
	Ledger     string
	Confidence float64
	Strategy   string
}

// Suggestion pairs an input narration with its resolution, in the shape
// consumed by downstream voucher tooling.
type Suggestion struct {
	Narration  string  `csv:"Narration"`
	Ledger     string  `csv:"Mapped Ledger"`
	Confidence float64 `csv:"Confidence"`
	Strategy   string  `csv:"Strategy"`
}

// CategoryConfig represents one spending/income category and the keywords
// that select it. Category tables are ordered; earlier entries win ties.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// LedgersConfig is the structure of the ledger master YAML file.
type LedgersConfig struct {
	Ledgers []string `yaml:"ledgers"`
}

// RulesConfig is the structure of the rules YAML file.
type RulesConfig struct {
	Rules []Rule `yaml:"rules"`
}
