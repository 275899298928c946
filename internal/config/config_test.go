package config_test

import (
	"os"
	"testing"

	"vkrishnan/ledger-match/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatal(err)
		}
	})
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "Suspense A/c", cfg.Matcher.SuspenseLedger)
	assert.Equal(t, 50.0, cfg.Matcher.MinKeywordScore)
	assert.Equal(t, 55.0, cfg.Matcher.MinFocusScore)
	assert.Equal(t, 0.7, cfg.Matcher.AutoMapSimilarity)
	assert.False(t, cfg.Semantic.Enabled)
	assert.Equal(t, "text-embedding-004", cfg.Semantic.Model)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGERMATCH_MATCHER_SUSPENSE_LEDGER", "Unmatched A/c")
	t.Setenv("LEDGERMATCH_LOG_LEVEL", "debug")

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "Unmatched A/c", cfg.Matcher.SuspenseLedger)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitializeConfigInvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGERMATCH_LOG_LEVEL", "bogus")

	_, err := config.InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigSemanticRequiresAPIKey(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGERMATCH_SEMANTIC_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := config.InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfigGeminiKeyBinding(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LEDGERMATCH_SEMANTIC_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.Semantic.APIKey)
	assert.True(t, cfg.Semantic.Enabled)
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)

	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"
	logger := config.ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
