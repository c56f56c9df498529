package util

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePNG_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ksuid.New().String()+".png")

	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(2, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	require.NoError(t, SavePNG(path, src))

	got, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.NRGBAModel.Convert(got.At(0, 0)))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 0}, color.NRGBAModel.Convert(got.At(2, 1)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSavePNG_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, SavePNG(path, image.NewGray(image.Rect(0, 0, 1, 1))))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	_, err = png.DecodeConfig(f)
	assert.NoError(t, err)
}

func TestSavePNG_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.png")
	err := SavePNG(path, image.NewGray(image.Rect(0, 0, 1, 1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenImage(filepath.Join(dir, "nope.png"))
		var pathErr *fs.PathError
		assert.ErrorAs(t, err, &pathErr)
	})

	t.Run("not an image", func(t *testing.T) {
		p := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))
		_, err := OpenImage(p)
		require.Error(t, err)
		var pathErr *fs.PathError
		assert.NotErrorAs(t, err, &pathErr)
		assert.ErrorIs(t, err, image.ErrFormat)
	})
}
