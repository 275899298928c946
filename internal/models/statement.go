package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StatementRow is one line of an imported bank or journal statement CSV.
// Only the narration participates in resolution; amounts are carried
// through for downstream voucher tooling.
type StatementRow struct {
	Date      string          `csv:"Date"`
	Narration string          `csv:"Narration"`
	Debit     decimal.Decimal `csv:"Debit"`
	Credit    decimal.Decimal `csv:"Credit"`
}

// HasNarration reports whether the row carries a usable narration. Rows
// without one are aggregated under the reserved missing-narration key and
// mapped to the suspense ledger.
func (r StatementRow) HasNarration() bool {
	return strings.TrimSpace(r.Narration) != ""
}
