package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileScanStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileScanStore(filepath.Join(dir, "maps"))
	require.NoError(t, err)

	path, err := store.Save("scan.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "maps", "scan.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), data)
}

func TestFileScanStore_SanitizesFileName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileScanStore(dir)
	require.NoError(t, err)

	path, err := store.Save("../../evil.jpg", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "evil.jpg"), path)

	path, err = store.Save("", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "scan.jpg"), path)
}

func TestNewFileScanStore_EmptyDir(t *testing.T) {
	_, err := NewFileScanStore("")
	require.Error(t, err)
}
