package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	assert.NotEmpty(t, cat.VerbosePhrases)
	assert.NotEmpty(t, cat.LLMPhrases)
	assert.Contains(t, cat.BridgePatterns, "en")
	assert.Contains(t, cat.BridgePatterns, "nl")
}

func TestLoadCatalogOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `llm_phrases:
  - "custom phrase one"
  - "custom phrase two"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)

	// The overridden list replaces the default; untouched fields keep
	// their built-in values.
	assert.Equal(t, []string{"custom phrase one", "custom phrase two"}, cat.LLMPhrases)
	assert.Equal(t, DefaultCatalog().VerbosePhrases, cat.VerbosePhrases)
	assert.Equal(t, DefaultCatalog().BridgePatterns, cat.BridgePatterns)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	// Defaults still come back so the caller can decide to proceed.
	assert.NotEmpty(t, cat.VerbosePhrases)
}

func TestLoadCatalogInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm_phrases: {not a list"), 0o644))

	_, err := LoadCatalog(path)
	assert.Error(t, err)
}
