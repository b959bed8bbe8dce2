package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArchiveStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewArchiveStore(dir, zap.NewNop())

	path, err := store.Save("night_checks_2024-05-01.zip", []byte("zipbytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "night_checks_2024-05-01.zip"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("zipbytes"), data)
}

func TestArchiveStore_Save_SanitizesName(t *testing.T) {
	dir := t.TempDir()
	store := NewArchiveStore(dir, zap.NewNop())

	path, err := store.Save("../escape attempt.zip", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestArchiveStore_Save_EmptyName(t *testing.T) {
	store := NewArchiveStore(t.TempDir(), zap.NewNop())
	_, err := store.Save("...", []byte("x"))
	assert.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "night_checks_2024-05-01.zip", SanitizeName("night_checks_2024-05-01.zip"))
	assert.Equal(t, "a_b.zip", SanitizeName("a b.zip"))
	assert.Equal(t, "escape.zip", SanitizeName("../escape.zip"))
}
