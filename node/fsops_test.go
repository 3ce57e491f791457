package node_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/contentvfs/node"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	assert.True(t, node.Exists(file))
	assert.False(t, node.Exists(filepath.Join(dir, "missing.txt")))
}

func TestIsDirectoryAndIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("a"), 0o644))

	assert.True(t, node.IsDirectory(dir))
	assert.False(t, node.IsDirectory(file))
	assert.True(t, node.IsRegularFile(file))
	assert.False(t, node.IsRegularFile(dir))
}

func TestIsEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, node.IsEmpty(dir))

	emptyFile := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, nil, 0o644))

	assert.True(t, node.IsEmpty(emptyFile))

	require.NoError(t, os.WriteFile(emptyFile, []byte("x"), 0o644))
	assert.False(t, node.IsEmpty(emptyFile))
}

func TestFilesInDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.inf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	found := node.FilesInDir(dir, false, ".inf")
	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(dir, "a.inf"), found[0])
}

func TestReadTextFile_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bom.txt")
	bom := []byte{0xEF, 0xBB, 0xBF}
	require.NoError(t, os.WriteFile(file, append(bom, []byte("hello")...), 0o644))

	text, ok := node.ReadTextFile(file)
	require.True(t, ok)
	assert.Equal(t, "hello", text)
}

func TestReadTextFile_MissingFile(t *testing.T) {
	_, ok := node.ReadTextFile("/nonexistent/path/to/file.txt")
	assert.False(t, ok)
}

func TestManager_WriteFile_RefusesUnwriteableNode(t *testing.T) {
	dir := t.TempDir()
	m := node.NewManager(nil)

	file := filepath.Join(dir, "blocked.txt")
	ok := m.WriteFile(file, func(w io.Writer) bool {
		_, err := w.Write([]byte("x"))
		return err == nil
	})
	assert.False(t, ok)
	assert.False(t, node.Exists(file))
}

func TestManager_WriteTextFile_Succeeds(t *testing.T) {
	dir := t.TempDir()
	m := node.NewManager(nil)

	file := filepath.Join(dir, "allowed.txt")
	n := m.Emplace(file)
	n.SetWriteable(true)

	ok := m.WriteTextFile(file, "hello world")
	require.True(t, ok)

	contents, ok := node.ReadTextFile(file)
	require.True(t, ok)
	assert.Equal(t, "hello world", contents)
}

func TestManager_CreateDirectories_RefusesUnwriteableNode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")
	m := node.NewManager(nil)

	ok := m.CreateDirectories(target)
	assert.False(t, ok)
	assert.False(t, node.IsDirectory(target))
}

func TestManager_CreateDirectories_SucceedsWhenWriteable(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")
	m := node.NewManager(nil)

	n := m.Emplace(target)
	n.SetWriteable(true)

	ok := m.CreateDirectories(target)
	require.True(t, ok)
	assert.True(t, node.IsDirectory(target))
}
