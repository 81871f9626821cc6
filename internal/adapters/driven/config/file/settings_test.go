package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

func TestNewSettingsStore_DefaultsWhenNoFile(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, domain.AIProviderOllama, settings.AI.Provider)
	assert.Equal(t, 800, settings.Chunking.Size)
	assert.Equal(t, 200, settings.Chunking.Overlap)
	assert.Equal(t, 768, settings.Index.Dimensions)
	assert.Equal(t, 4, settings.Ingest.Workers)
}

func TestSettingsStore_UpdatePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	settings.AI.Provider = domain.AIProviderGemini
	settings.AI.EmbeddingModel = "text-embedding-004"
	settings.Chunking.Size = 1000
	require.NoError(t, store.Update(settings))

	reloaded, err := NewSettingsStore(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, reloaded.Settings().AI.Provider)
	assert.Equal(t, "text-embedding-004", reloaded.Settings().AI.EmbeddingModel)
	assert.Equal(t, 1000, reloaded.Settings().Chunking.Size)
}

func TestSettingsStore_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[ai]\nprovider = \"gemini\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings := store.Settings()
	assert.Equal(t, domain.AIProviderGemini, settings.AI.Provider)
	assert.Equal(t, 800, settings.Chunking.Size)
	assert.Equal(t, 768, settings.Index.Dimensions)
}

func TestSettingsStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [ toml"), 0o600))

	_, err := NewSettingsStore(dir)
	assert.Error(t, err)
}

func TestSettingsStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Update(store.Settings()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
