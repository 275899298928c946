package logging_test

import (
	"fmt"
	"testing"

	"vkrishnan/ledger-match/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerCapturesEntries(t *testing.T) {
	log := logging.NewMockLogger()

	log.Info("resolved narration", logging.Field{Key: "ledger", Value: "Rent A/c"})
	log.Warn("rules file not found")

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "resolved narration", entries[0].Message)
	require.Len(t, entries[0].Fields, 1)
	assert.Equal(t, "ledger", entries[0].Fields[0].Key)

	assert.True(t, log.HasEntry("WARN", "rules file not found"))
	assert.False(t, log.HasEntry("ERROR", "rules file not found"))
}

func TestMockLoggerDerivedLoggersShareEntries(t *testing.T) {
	log := logging.NewMockLogger()

	log.WithError(fmt.Errorf("boom")).Warn("strategy failed")
	log.WithField("strategy", "rule").Info("attempted")

	// Entries logged through derived loggers land on the parent.
	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "strategy failed", entries[0].Message)
	assert.EqualError(t, entries[0].Error, "boom")
	require.Len(t, entries[1].Fields, 1)
	assert.Equal(t, "strategy", entries[1].Fields[0].Key)
}

func TestNewLogrusAdapter(t *testing.T) {
	// Invalid level and format fall back to info/text rather than failing.
	log := logging.NewLogrusAdapter("bogus", "bogus")
	require.NotNil(t, log)
	log.Info("still works")

	jsonLog := logging.NewLogrusAdapter("debug", "json")
	require.NotNil(t, jsonLog)
	jsonLog.Debug("debug enabled", logging.Field{Key: "k", Value: "v"})
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	log := logging.NewLogrusAdapterFromLogger(nil)
	require.NotNil(t, log)
	log.WithField("k", "v").Info("wrapped nil logger")
}
