package textutils_test

import (
	"testing"

	"vkrishnan/ledger-match/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "UPI narration with name and purpose",
			input:    "UPI-JOHN DOE-SALARY APR",
			expected: "JOHN DOE SALARY APR",
		},
		{
			name:     "NEFT with reference number",
			input:    "NEFT-REF12345 OFFICE RENT",
			expected: "OFFICE RENT",
		},
		{
			name:     "noise only",
			input:    "TXN12345",
			expected: "",
		},
		{
			name:     "directional preposition removed",
			input:    "Payment to Mr Sharma",
			expected: "MR SHARMA",
		},
		{
			name:     "cheque number removed",
			input:    "CHQ123456 VENDOR ABC",
			expected: "VENDOR ABC",
		},
		{
			name:     "bracketed content and hash tags removed",
			input:    "RENT (APRIL) #Q1 SHOP",
			expected: "RENT APRIL SHOP",
		},
		{
			name:     "lowercase input uppercased",
			input:    "fuel expenses",
			expected: "FUEL EXPENSES",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"UPI-JOHN DOE-SALARY APR",
		"NEFT-REF12345 OFFICE RENT",
		"IMPS/P2A/12345/JOHN",
		"CREDIT CARD BILL 99887766",
		"T RF SALARY", // splicing: removing noise can create new noise tokens
		"ZZZXQ19284",
	}

	for _, input := range inputs {
		once := textutils.Normalize(input)
		twice := textutils.Normalize(once)
		assert.Equal(t, once, twice, "Normalize must be idempotent for %q", input)
	}
}
