package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReaderCaching(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "Service.cs")
	testContent := "public class Service { public Dto Get() { return null; } }"
	require.NoError(t, os.WriteFile(testFile, []byte(testContent), 0644))

	reader := NewFileReader()

	first, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, first)

	second, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	files, hits, misses := reader.CacheStats()
	assert.Equal(t, 1, files)
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestFileReaderCacheInvalidation(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "Service.cs")
	require.NoError(t, os.WriteFile(testFile, []byte("public class A { }"), 0644))

	reader := NewFileReader()
	_, err := reader.ReadFile(testFile)
	require.NoError(t, err)

	updated := "public class AB { public Dto Get() { return null; } }"
	require.NoError(t, os.WriteFile(testFile, []byte(updated), 0644))

	content, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, updated, content)

	_, hits, misses := reader.CacheStats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(2), misses)
}

func TestFileReaderInvalidateAndClear(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.cs")
	b := filepath.Join(dir, "B.cs")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0644))

	reader := NewFileReader()
	_, err := reader.ReadFile(a)
	require.NoError(t, err)
	_, err = reader.ReadFile(b)
	require.NoError(t, err)

	reader.InvalidateFile(a)
	files, _, _ := reader.CacheStats()
	assert.Equal(t, 1, files)

	reader.InvalidateFile("")
	reader.ClearCache()
	files, _, _ = reader.CacheStats()
	assert.Equal(t, 0, files)
}

func TestFileReaderErrors(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.ReadFile("")
	assert.Error(t, err)

	_, err = reader.ReadFile(filepath.Join(t.TempDir(), "missing.cs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.cs")
}
