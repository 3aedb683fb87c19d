package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAssetStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalAssetStore(dir)
	require.NoError(t, err)

	t.Run("PutAndList", func(t *testing.T) {
		asset, err := store.Put("flash sketch.jpg", strings.NewReader("fake-jpeg"), 9)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(asset.Ref, "-flash-sketch.jpg"))
		assert.Equal(t, "/uploads/"+asset.Ref, asset.URL)

		photos, err := store.List("")
		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, asset.Ref, photos[0].Ref)
	})

	t.Run("RejectsUnsupportedType", func(t *testing.T) {
		_, err := store.Put("notes.txt", strings.NewReader("text"), 4)
		assert.ErrorIs(t, err, ErrUnsupportedType)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		for _, entry := range entries {
			assert.NotContains(t, entry.Name(), "notes", "rejected upload must not touch disk")
		}
	})

	t.Run("RejectsTooLarge", func(t *testing.T) {
		_, err := store.Put("big.png", strings.NewReader(""), MaxUploadSize+1)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		asset, err := store.Put("gone.png", strings.NewReader("png"), 3)
		require.NoError(t, err)
		require.NoError(t, store.Delete(asset.Ref))
		require.NoError(t, store.Delete(asset.Ref), "second delete must be a no-op success")
		require.NoError(t, store.Delete("never-existed.jpg"))
	})

	t.Run("DeleteStripsPath", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "outside.jpg")
		require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
		require.NoError(t, store.Delete("../outside.jpg"))
		_, err := os.Stat(outside)
		assert.NoError(t, err, "delete must never escape the storage root")
	})

	t.Run("ListExcludesAvatar", func(t *testing.T) {
		avatar, err := store.Put("me.webp", strings.NewReader("webp"), 4)
		require.NoError(t, err)

		photos, err := store.List(avatar.Ref)
		require.NoError(t, err)
		for _, photo := range photos {
			assert.NotEqual(t, avatar.Ref, photo.Ref)
		}

		all, err := store.List("")
		require.NoError(t, err)
		assert.Len(t, all, len(photos)+1)
	})

	t.Run("ListIgnoresForeignFiles", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644))
		photos, err := store.List("")
		require.NoError(t, err)
		for _, photo := range photos {
			assert.NotEqual(t, "stray.txt", photo.Ref)
		}
	})
}

func TestDeriveKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	t.Run("SanitizesName", func(t *testing.T) {
		key := deriveKey("../../etc/pass wd!.PNG", now)
		assert.Equal(t, "1700000000000-pass-wd.png", key)
	})

	t.Run("KeepsUnicodeLetters", func(t *testing.T) {
		key := deriveKey("эскиз дракона.jpg", now)
		assert.Equal(t, "1700000000000-эскиз-дракона.jpg", key)
	})

	t.Run("FallsBackWhenEmpty", func(t *testing.T) {
		key := deriveKey("!!!.jpg", now)
		assert.True(t, strings.HasPrefix(key, "1700000000000-"))
		assert.True(t, strings.HasSuffix(key, ".jpg"))
		assert.Greater(t, len(key), len("1700000000000-.jpg"))
	})
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("a.jpg"))
	assert.True(t, AllowedImage("a.JPEG"))
	assert.True(t, AllowedImage("b.webp"))
	assert.False(t, AllowedImage("c.gif"))
	assert.False(t, AllowedImage("noext"))
}
