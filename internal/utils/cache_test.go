package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCacheWithSize[string, int](DefaultCacheSize)

	cache.Set("key1", 42)
	value, exists := cache.Get("key1")
	if !exists {
		t.Error("expected key1 to exist")
	}
	if value != 42 {
		t.Errorf("expected value 42, got %d", value)
	}

	_, exists = cache.Get("nonexistent")
	if exists {
		t.Error("expected nonexistent key to not exist")
	}

	cache.Delete("key1")
	_, exists = cache.Get("key1")
	if exists {
		t.Error("expected key1 to be deleted")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCacheWithSize[string, string](DefaultCacheSize)

	cache.Set("key1", "value1")
	cache.Set("key2", "value2")

	if cache.Size() != 2 {
		t.Errorf("expected size 2, got %d", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("expected size 0 after clear, got %d", cache.Size())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewCacheWithSize[string, int](2)

	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Get("a")
	cache.Set("c", 3)

	if cache.Size() != 2 {
		t.Fatalf("expected size 2, got %d", cache.Size())
	}
	if _, exists := cache.Get("b"); exists {
		t.Error("expected b to be evicted")
	}
	if _, exists := cache.Get("a"); !exists {
		t.Error("expected recently used a to survive")
	}
}

func TestCache_NonPositiveSizeUsesDefault(t *testing.T) {
	cache := NewCacheWithSize[string, int](0)
	for i := 0; i < 10; i++ {
		cache.Set(fmt.Sprintf("k%d", i), i)
	}
	if cache.Size() != 10 {
		t.Errorf("expected 10 items, got %d", cache.Size())
	}
}

func TestCache_FileValidation(t *testing.T) {
	cache := NewCacheWithSize[string, string](DefaultCacheSize)

	tmpFile := filepath.Join(t.TempDir(), "Service.cs")

	content := "public class A { }"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if err := cache.SetWithFileInfo(tmpFile, content, tmpFile); err != nil {
		t.Fatalf("failed to set cache with file info: %v", err)
	}

	value, exists := cache.GetWithFileValidation(tmpFile, tmpFile)
	if !exists {
		t.Error("expected cached value to exist")
	}
	if value != content {
		t.Errorf("expected content %s, got %s", content, value)
	}

	// a different size invalidates even when the modification time is unchanged
	if err := os.WriteFile(tmpFile, []byte("public class AB { }"), 0644); err != nil {
		t.Fatalf("failed to modify temp file: %v", err)
	}

	if _, exists = cache.GetWithFileValidation(tmpFile, tmpFile); exists {
		t.Error("expected cached value to be invalidated after file change")
	}
	if cache.Size() != 0 {
		t.Errorf("expected cache to be empty after invalidation, got size %d", cache.Size())
	}
}

func TestCache_FileValidationNonExistentFile(t *testing.T) {
	cache := NewCacheWithSize[string, string](DefaultCacheSize)
	cache.Set("test", "stale")

	if _, exists := cache.GetWithFileValidation("test", "/nonexistent/file.cs"); exists {
		t.Error("expected false for non-existent file")
	}
	if cache.Size() != 0 {
		t.Error("expected entry for a vanished file to be dropped")
	}
}

func TestCache_SetWithFileInfoNonExistentFile(t *testing.T) {
	cache := NewCacheWithSize[string, string](DefaultCacheSize)

	if err := cache.SetWithFileInfo("test", "content", "/nonexistent/file.cs"); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCacheWithSize[string, int](DefaultCacheSize)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set(fmt.Sprintf("key%d_%d", id, j), id*100+j)
			}
		}(i)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Get(fmt.Sprintf("key%d_%d", id, j))
			}
		}(i)
	}
	wg.Wait()

	if cache.Size() != 500 {
		t.Errorf("expected 500 items in cache, got %d", cache.Size())
	}
}
