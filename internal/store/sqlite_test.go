package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"vkrishnan/ledger-match/internal/models"
	"vkrishnan/ledger-match/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *store.SQLiteLearnedStore {
	t.Helper()
	s, err := store.OpenLearnedStore(filepath.Join(t.TempDir(), "learned.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLearnedStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	entry := models.LearnedMapping{
		Ledger:     "Rent A/c",
		Score:      80,
		UsageCount: 1,
		LastUsed:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put("OFFICE RENT PAID", entry))

	got, ok, err := s.Get("OFFICE RENT PAID")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Ledger, got.Ledger)
	assert.Equal(t, entry.Score, got.Score)
	assert.Equal(t, entry.UsageCount, got.UsageCount)
	assert.True(t, entry.LastUsed.Equal(got.LastUsed))
}

func TestLearnedStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("NO SUCH KEY")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLearnedStoreUpsert(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("UPI-JOHN", models.LearnedMapping{
		Ledger: "John Doe A/c", Score: 80, UsageCount: 1, LastUsed: time.Now(),
	}))
	require.NoError(t, s.Put("UPI-JOHN", models.LearnedMapping{
		Ledger: "John Doe A/c", Score: 94, UsageCount: 2, LastUsed: time.Now(),
	}))

	got, ok, err := s.Get("UPI-JOHN")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 94.0, got.Score)
	assert.Equal(t, 2, got.UsageCount)

	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLearnedStoreAll(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("A", models.LearnedMapping{Ledger: "A A/c", Score: 80, UsageCount: 1, LastUsed: time.Now()}))
	require.NoError(t, s.Put("B", models.LearnedMapping{Ledger: "B A/c", Score: 85, UsageCount: 2, LastUsed: time.Now()}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A A/c", all["A"].Ledger)
	assert.Equal(t, "B A/c", all["B"].Ledger)
}

func TestMemoryLearnedStore(t *testing.T) {
	s := store.NewMemoryLearnedStore(map[string]models.LearnedMapping{
		"SEED": {Ledger: "Seed A/c", Score: 80, UsageCount: 1},
	})

	got, ok, err := s.Get("SEED")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Seed A/c", got.Ledger)

	require.NoError(t, s.Put("NEW", models.LearnedMapping{Ledger: "New A/c"}))
	all, err := s.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
