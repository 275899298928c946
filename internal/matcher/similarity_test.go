package matcher_test

import (
	"testing"

	"vkrishnan/ledger-match/internal/matcher"

	"github.com/stretchr/testify/assert"
)

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical strings", a: "fuel expenses", b: "fuel expenses", want: 1.0},
		{name: "identical ignoring case", a: "Fuel Expenses", b: "FUEL EXPENSES", want: 1.0},
		{name: "empty left operand", a: "", b: "fuel", want: 0},
		{name: "empty right operand", a: "fuel", b: "", want: 0},
		{name: "both empty", a: "", b: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, matcher.StringSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestStringSimilarityIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"office rent paid", "office rent payed"},
		{"john doe salary", "salary of john doe"},
		{"fuel expenses", "petrol pump"},
		{"abc", "xyz"},
	}

	for _, pair := range pairs {
		forward := matcher.StringSimilarity(pair[0], pair[1])
		backward := matcher.StringSimilarity(pair[1], pair[0])
		assert.InDelta(t, forward, backward, 1e-9, "similarity(%q,%q) must be symmetric", pair[0], pair[1])
	}
}

func TestStringSimilarityOrdering(t *testing.T) {
	near := matcher.StringSimilarity("fuel expenses", "fuel charges")
	far := matcher.StringSimilarity("fuel expenses", "office rent")
	assert.Greater(t, near, far)

	for _, pair := range [][2]string{
		{"fuel expenses", "fuel charges"},
		{"abc", "xyz"},
	} {
		s := matcher.StringSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
