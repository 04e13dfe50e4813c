package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// FileReader reads source files and memoizes their text. An entry is reused only
// while the file's modification time and size are unchanged.
type FileReader struct {
	contentCache *Cache[string, string]
	hits         atomic.Int64
	misses       atomic.Int64
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return NewFileReaderWithCacheSize(DefaultCacheSize)
}

// NewFileReaderWithCacheSize creates a FileReader whose cache holds up to size files
func NewFileReaderWithCacheSize(size int) *FileReader {
	return &FileReader{
		contentCache: NewCacheWithSize[string, string](size),
	}
}

// ReadFile reads a file and returns its contents as a string with caching.
// Read failures are returned as the *fs.PathError from os.ReadFile.
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.cleanPath(filePath)
	if err != nil {
		return "", err
	}

	if cached, exists := fr.contentCache.GetWithFileValidation(cleanPath, cleanPath); exists {
		fr.hits.Add(1)
		return cached, nil
	}
	fr.misses.Add(1)

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", err
	}

	contentStr := string(content)

	// a file removed between the read and the stat is simply not cached
	_ = fr.contentCache.SetWithFileInfo(cleanPath, contentStr, cleanPath)

	return contentStr, nil
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.contentCache.Clear()
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	cleanPath, err := fr.cleanPath(filePath)
	if err != nil {
		return
	}
	fr.contentCache.Delete(cleanPath)
}

// CacheStats reports the number of cached files and the hit and miss counters
func (fr *FileReader) CacheStats() (files int, hits, misses int64) {
	return fr.contentCache.Size(), fr.hits.Load(), fr.misses.Load()
}

func (fr *FileReader) cleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}
	return filepath.Clean(strings.TrimSpace(filePath)), nil
}
