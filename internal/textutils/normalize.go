// Package textutils cleans raw bank narration text: stripping
// transaction-system noise and isolating probable party names.
package textutils

import (
	"regexp"
	"strings"
)

// noisePatterns is the catalog of transaction-system noise removed from
// narrations before matching: payment-rail codes, reference and cheque
// number patterns, card markers, directional prepositions, invoice labels,
// bracketed content, hash tags and digit runs. Order matters.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`UPI-?`),
	regexp.MustCompile(`TXN-?`),
	regexp.MustCompile(`REF-?`),
	regexp.MustCompile(`IMPS`),
	regexp.MustCompile(`NEFT`),
	regexp.MustCompile(`RTGS`),
	regexp.MustCompile(`UTR?\d*`),
	regexp.MustCompile(`CHQ\d*`),
	regexp.MustCompile(`CHEQUE\d*`),
	regexp.MustCompile(`CREDIT\s*CARD`),
	regexp.MustCompile(`DEBIT\s*CARD`),
	regexp.MustCompile(`ATM`),
	regexp.MustCompile(`IB\d*`),
	regexp.MustCompile(`/`),
	regexp.MustCompile(`\\`),
	regexp.MustCompile(`TRF`),
	regexp.MustCompile(`TRANSFER`),
	regexp.MustCompile(`PAYMENT`),
	regexp.MustCompile(`RECEIPT`),
	regexp.MustCompile(`DEPOSIT`),
	regexp.MustCompile(`WITHDRAWAL`),
	regexp.MustCompile(`TO\s+`),
	regexp.MustCompile(`FROM\s+`),
	regexp.MustCompile(`BY\s+`),
	regexp.MustCompile(`VIA\s+`),
	regexp.MustCompile(`THROUGH\s+`),
	regexp.MustCompile(`BILL\s+NO`),
	regexp.MustCompile(`INVOICE\s+NO`),
	regexp.MustCompile(`REF\s+NO`),
	regexp.MustCompile(`ID\s+`),
	regexp.MustCompile(`TDS\s+`),
	regexp.MustCompile(`\d{2,}`),
	regexp.MustCompile(`[(){}\[\]]`),
	regexp.MustCompile(`#\w+`),
}

var (
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

// Normalize strips transaction-system noise from a raw narration and
// returns an uppercase token stream with single spaces. Empty or absent
// input yields the empty string.
//
// Normalize is idempotent: removing a noise token can splice surviving
// fragments into a new noise token, so the single-pass transform is
// iterated to a fixpoint. The loop terminates because each pass only
// deletes or collapses characters.
func Normalize(text string) string {
	s := strings.ToUpper(strings.TrimSpace(text))
	for {
		next := normalizePass(s, noisePatterns)
		if next == s {
			return s
		}
		s = next
	}
}

func normalizePass(s string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		s = p.ReplaceAllString(s, "")
	}
	s = nonAlnum.ReplaceAllString(s, " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
