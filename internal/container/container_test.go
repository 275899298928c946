package container_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vkrishnan/ledger-match/internal/config"
	"vkrishnan/ledger-match/internal/container"

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

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	chdir(t, t.TempDir())

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	cfg.Data.LearnedDB = filepath.Join(t.TempDir(), "learned.db")
	return cfg
}

func TestNewContainerNilConfig(t *testing.T) {
	_, err := container.NewContainer(nil)
	assert.Error(t, err)
}

func TestNewContainerWiresDependencies(t *testing.T) {
	c, err := container.NewContainer(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetMatcher())
	assert.NotNil(t, c.GetMappingStore())
	assert.NotNil(t, c.GetLearnedStore())
}

func TestBuildRequest(t *testing.T) {
	c, err := container.NewContainer(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	req, err := c.BuildRequest()
	require.NoError(t, err)

	// No data files present: the request is empty but usable, and every
	// narration resolves to the suspense ledger.
	assert.Equal(t, "Suspense A/c", req.SuspenseLedger)
	assert.Empty(t, req.LedgerMaster)
	assert.Empty(t, req.Rules)
	assert.Empty(t, req.Learned)

	result := c.GetMatcher().Resolve(context.Background(), "ANYTHING AT ALL", req)
	assert.Equal(t, "Suspense A/c", result.Ledger)
}
