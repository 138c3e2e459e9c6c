package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir)
	require.NoError(t, err)
	storage.now = func() time.Time { return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC) }

	path, err := storage.Save(strings.NewReader("%PDF-1.4"), "Manual.PDF", "equipment")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "equipment/2025/03/15/2025-03-15-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))

	require.NoError(t, storage.Delete(path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, storage.Delete(path))
}

func TestDeleteRejectsPathsOutsideStorage(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, storage.Delete("../secret.txt"), ErrOutsideStorage)
	assert.ErrorIs(t, storage.Delete(""), ErrOutsideStorage)
}
