package matcher

import (
	"strings"

	"vkrishnan/ledger-match/internal/textutils"
)

// ledgerNoiseWords are dropped from ledger names before keyword expansion;
// they carry no matching signal ("Fuel Expenses A/c" indexes as "fuel").
var ledgerNoiseWords = map[string]bool{
	"account": true, "a/c": true, "ac": true, "ledger": true,
	"bank": true, "cash": true, "general": true,
	"misc": true, "miscellaneous": true,
	"expense": true, "expenses": true, "and": true, "&": true,
}

// keywordSynonyms expands ledger keywords with domain synonyms. Lookup is
// one-directional per entry, so both directions are listed explicitly
// (petrol implies fuel and fuel implies petrol as separate entries).
var keywordSynonyms = map[string][]string{
	"fuel":   {"petrol", "diesel", "gas", "cng"},
	"petrol": {"fuel", "diesel", "gas", "cng"},
	"diesel": {"fuel", "petrol", "gas", "cng"},
	"rent":   {"lease"},
	"salary": {"payroll", "wages", "wage"},
	"travel": {"transport", "conveyance"},
	"vendor": {"supplier", "contractor"},
	"client": {"customer", "debtor"},
	"gst":    {"tax"},
	"tds":    {"tax"},
}

// LedgerKeywordEntry is a derived, searchable view of one ledger name:
// its normalized text and a synonym-expanded keyword set. Recomputed
// whenever the ledger master changes; it has no independent lifecycle.
type LedgerKeywordEntry struct {
	Ledger   string
	Clean    string
	Keywords map[string]bool
}

// BuildIndex precomputes the keyword entries for a ledger master.
func BuildIndex(ledgerMaster []string) []LedgerKeywordEntry {
	index := make([]LedgerKeywordEntry, 0, len(ledgerMaster))

	for _, ledger := range ledgerMaster {
		clean := textutils.Normalize(ledger)

		keywords := make(map[string]bool)
		for _, word := range strings.Fields(strings.ToLower(clean)) {
			if ledgerNoiseWords[word] {
				continue
			}
			keywords[word] = true
			for _, syn := range keywordSynonyms[word] {
				keywords[syn] = true
			}
		}

		index = append(index, LedgerKeywordEntry{
			Ledger:   ledger,
			Clean:    clean,
			Keywords: keywords,
		})
	}

	return index
}

// FocusMatch scores narrations directly against ledger names: keyword
// overlap, string similarity and a bonus when the whole normalized ledger
// name appears inside the narration. Returns the best ledger and a score
// capped at 95, or ("", 0) when nothing qualifies.
func FocusMatch(narration string, index []LedgerKeywordEntry) (string, float64) {
	clean := textutils.Normalize(narration)
	narrationWords := fieldSet(strings.ToLower(clean))

	if len(narrationWords) == 0 || len(index) == 0 {
		return "", 0
	}

	bestLedger := ""
	bestScore := 0.0

	for _, entry := range index {
		overlap := 0
		for word := range narrationWords {
			if entry.Keywords[word] {
				overlap++
			}
		}
		overlapScore := float64(overlap) * 22

		nameSimilarity := StringSimilarity(clean, entry.Clean)
		similarityScore := nameSimilarity * 60

		partialBonus := 0.0
		if entry.Clean != "" && strings.Contains(clean, entry.Clean) {
			partialBonus = 20
		}

		combined := overlapScore + similarityScore + partialBonus

		if combined > bestScore && (overlap > 0 || nameSimilarity >= 0.55) {
			bestScore = combined
			bestLedger = entry.Ledger
		}
	}

	if bestLedger == "" {
		return "", 0
	}
	if bestScore > 95 {
		bestScore = 95
	}
	return bestLedger, bestScore
}
