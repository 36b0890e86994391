package images

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorage(t *testing.T) {
	t.Run("creates reviews subdirectory", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := NewStorage(tmpDir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tmpDir, "reviews", "abc.jpg"), storage.Path("abc"))
	})

	t.Run("rejects empty base path", func(t *testing.T) {
		_, err := NewStorage("")
		assert.Error(t, err)
	})

	t.Run("custom subdirectory", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := NewStorageWithSubdir(tmpDir, "profiles")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(tmpDir, "profiles", "u1.jpg"), storage.Path("u1"))
	})

	t.Run("rejects empty subdirectory", func(t *testing.T) {
		_, err := NewStorageWithSubdir(t.TempDir(), "")
		assert.Error(t, err)
	})
}

func TestStorage_SaveGetDelete(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	data := []byte("image-bytes")

	require.NoError(t, storage.Save("img1", data))
	assert.True(t, storage.Exists("img1"))

	got, err := storage.Get("img1")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, storage.Delete("img1"))
	assert.False(t, storage.Exists("img1"))

	// Deleting again is a no-op.
	assert.NoError(t, storage.Delete("img1"))
}

func TestStorage_Validation(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, storage.Save("", []byte("x")))
	assert.Error(t, storage.Save("img1", nil))

	_, err = storage.Get("")
	assert.Error(t, err)

	_, err = storage.Get("missing")
	assert.Error(t, err)

	assert.False(t, storage.Exists(""))
}

func TestStorage_Hash(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.Save("img1", []byte("same-bytes")))
	require.NoError(t, storage.Save("img2", []byte("same-bytes")))
	require.NoError(t, storage.Save("img3", []byte("other-bytes")))

	h1, err := storage.Hash("img1")
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := storage.Hash("img2")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := storage.Hash("img3")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)

	_, err = storage.Hash("missing")
	assert.Error(t, err)
}
