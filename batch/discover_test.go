package batch

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate_RecursiveNoFilter(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")
	touch(t, dir, "readme.txt")
	touch(t, filepath.Join(dir, "nested", "deeper"), "b.PNG")
	touch(t, filepath.Join(dir, "nested"), "c")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))

	paths, err := Enumerate(dir)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p.Path), p.Path)
		names = append(names, filepath.Base(p.Path))
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.jpg", "b.PNG", "c", "readme.txt"}, names)
}

func TestEnumerate_Stems(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "photo.final.jpeg")

	paths, err := Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "photo.final", paths[0].Stem)
}

func TestEnumerate_RelativeRoot(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.png")
	t.Chdir(dir)

	paths, err := Enumerate(".")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, filepath.IsAbs(paths[0].Path))
}

func TestEnumerate_EmptyDir(t *testing.T) {
	paths, err := Enumerate(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestEnumerate_MissingRoot(t *testing.T) {
	_, err := Enumerate(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestEnumerate_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "file.png")

	_, err := Enumerate(filepath.Join(dir, "file.png"))
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestEnumerate_SkipsUnreadableSubdir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	touch(t, dir, "a.png")
	locked := filepath.Join(dir, "locked")
	touch(t, locked, "b.png")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	paths, err := Enumerate(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "a", paths[0].Stem)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644))
}
