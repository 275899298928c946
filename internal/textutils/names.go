package textutils

import (
	"regexp"
	"strings"
)

// nameNoisePatterns extends the normalizer catalog with role words that
// never form part of a party name. Applied only to the name-extraction
// focus window.
var nameNoisePatterns = append(append([]*regexp.Regexp{}, noisePatterns[:len(noisePatterns)-3]...),
	regexp.MustCompile(`SALARY`),
	regexp.MustCompile(`PAYROLL`),
	regexp.MustCompile(`VENDOR`),
	regexp.MustCompile(`SUPPLIER`),
	regexp.MustCompile(`CLIENT`),
	regexp.MustCompile(`CUSTOMER`),
	regexp.MustCompile(`\d{2,}`),
	regexp.MustCompile(`[(){}\[\]]`),
	regexp.MustCompile(`#\w+`),
	regexp.MustCompile(`FOR\s+`),
	regexp.MustCompile(`TOWARD\s+`),
)

// nameIndicators are honorifics and connective tokens that signal a word
// window is a party name rather than transaction boilerplate.
var nameIndicators = map[string]bool{
	"MR": true, "MRS": true, "MS": true,
	"SHRI": true, "SMT": true, "SRI": true,
	"TO": true, "BY": true,
}

// transactionWords disqualify a candidate window when any of them appears
// inside it.
var transactionWords = []string{
	"BANK", "ACCOUNT", "CASH", "CHEQUE", "TRANSFER", "PAYMENT",
}

// personIndicators mark a narration as involving a person or company:
// payroll terms, vendor/client roles and honorifics with a trailing space.
var personIndicators = []string{
	"SALARY", "PAYROLL", "EMPLOYEE", "STAFF", "PAYMENT TO", "PAID TO",
	"VENDOR", "SUPPLIER", "CONTRACTOR", "SERVICE PROVIDER",
	"CLIENT", "CUSTOMER", "RECEIVED FROM", "RECEIPT FROM",
	"MR ", "MRS ", "MS ", "SHRI ", "SMT ", "SRI ",
}

// ExtractName isolates a probable person or company name from a narration.
// Bank narrations place the payer/payee near the end, so analysis is
// restricted to the second half of longer narrations.
func ExtractName(narration string) string {
	s := strings.ToUpper(strings.TrimSpace(narration))
	if s == "" {
		return ""
	}

	// Short narrations are taken whole. Length and the focus split are
	// measured in runes so multi-byte text is never cut mid-character.
	runes := []rune(s)
	if len(runes) <= 20 {
		return s
	}

	focus := string(runes[len(runes)/2:])
	for _, p := range nameNoisePatterns {
		focus = p.ReplaceAllString(focus, "")
	}
	focus = nonAlnum.ReplaceAllString(focus, " ")
	focus = spaceRuns.ReplaceAllString(focus, " ")
	focus = strings.TrimSpace(focus)

	words := strings.Fields(focus)

	// Prefer longer windows; ties go to the earliest occurrence.
	best := ""
	for i := range words {
		for _, length := range []int{4, 3, 2} {
			if i+length > len(words) {
				continue
			}
			window := words[i : i+length]
			candidate := strings.Join(window, " ")
			if len(candidate) < 3 {
				continue
			}
			if containsAny(candidate, transactionWords) {
				continue
			}
			if !hasIndicator(window) {
				continue
			}
			if len(candidate) > len(best) {
				best = candidate
			}
		}
	}
	if best != "" {
		return best
	}

	// No qualifying window: fall back to the tail words of the focus text.
	if len(words) >= 3 {
		return strings.Join(words[len(words)-3:], " ")
	}
	if len(words) > 0 {
		return strings.Join(words, " ")
	}
	return focus
}

// IdentifyPersonOrCompany extracts a candidate name and reports whether the
// narration reads like a person or company transaction.
func IdentifyPersonOrCompany(narration string) (string, bool) {
	upper := strings.ToUpper(narration)
	name := ExtractName(narration)
	return name, containsAny(upper, personIndicators)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasIndicator(window []string) bool {
	for _, w := range window {
		if nameIndicators[w] {
			return true
		}
	}
	return false
}
