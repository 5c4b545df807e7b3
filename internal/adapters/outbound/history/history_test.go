package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeflag/safeflag/internal/adapters/outbound/history"
	"github.com/safeflag/safeflag/internal/domain"
)

func TestFileHistory_LoadEmptyProject(t *testing.T) {
	entries, err := history.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileHistory_SaveAppendsInOrder(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "2026-08-25T10:00:00Z", Passed: true}))
	require.NoError(t, h.Save(dir, domain.RunEntry{Timestamp: "2026-08-25T11:00:00Z", Passed: false, Missing: 2}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Passed)
	assert.False(t, entries[1].Passed)
	assert.Equal(t, 2, entries[1].Missing)
}

func TestFileHistory_WritesUnderProjectDotDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, history.New().Save(dir, domain.RunEntry{Passed: true}))

	_, err := os.Stat(filepath.Join(dir, ".safeflag", "history", "runs.json"))
	assert.NoError(t, err)
}

func TestFileHistory_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".safeflag", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}
