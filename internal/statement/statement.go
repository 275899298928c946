// Package statement reads bank statement rows from CSV and writes
// suggestion reports back out.
package statement

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/models"
)

// ReadFile reads statement rows from a CSV file. Column headers must
// match the StatementRow csv tags (date, narration, debit, credit).
func ReadFile(path string, log logging.Logger) ([]models.StatementRow, error) {
	log.Info("reading statement file", logging.Field{Key: "file", Value: path})

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("failed to close statement file")
		}
	}()

	var rows []models.StatementRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing statement file: %w", err)
	}

	usable := 0
	for _, row := range rows {
		if row.HasNarration() {
			usable++
		}
	}
	log.Info("read statement rows",
		logging.Field{Key: "count", Value: len(rows)},
		logging.Field{Key: "with_narration", Value: usable})
	return rows, nil
}

// Narrations returns the narration column of the given rows, preserving
// row order and duplicates. Rows without a usable narration yield an
// empty string so batch resolution can account for them.
func Narrations(rows []models.StatementRow) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		if !row.HasNarration() {
			continue
		}
		out[i] = strings.TrimSpace(row.Narration)
	}
	return out
}

// SuggestionsFromResults flattens a resolution result map into a sorted
// suggestion list ready for printing or CSV export. Every entry in the
// map becomes one row, including the reserved missing-narration key.
func SuggestionsFromResults(results map[string]models.MatchResult) []models.Suggestion {
	out := make([]models.Suggestion, 0, len(results))
	for narration, result := range results {
		out = append(out, models.Suggestion{
			Narration:  narration,
			Ledger:     result.Ledger,
			Confidence: result.Confidence,
			Strategy:   result.Strategy,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Narration < out[j].Narration
	})
	return out
}

// WriteSuggestions writes the suggestion report as CSV.
func WriteSuggestions(suggestions []models.Suggestion, path string) error {
	if suggestions == nil {
		return fmt.Errorf("cannot write nil suggestions to CSV")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating suggestions file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(&suggestions, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing suggestions: %w", err)
	}
	return nil
}
