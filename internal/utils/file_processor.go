package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultSourceExtensions lists the file extensions collected when walking a directory
var DefaultSourceExtensions = []string{".cs"}

// DefaultExcludeDirs lists directory names skipped when walking a directory
var DefaultExcludeDirs = []string{"bin", "obj", ".git", ".vs"}

// PatternSet is a compiled list of glob patterns matched against base names
type PatternSet struct {
	patterns []string
	globs    []glob.Glob
}

// CompilePatterns compiles every non-blank pattern. The first invalid pattern aborts compilation.
func CompilePatterns(patterns []string) (*PatternSet, error) {
	set := &PatternSet{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		set.patterns = append(set.patterns, p)
		set.globs = append(set.globs, g)
	}
	return set, nil
}

// Match reports whether the base name of path matches any pattern
func (s *PatternSet) Match(path string) bool {
	if s == nil {
		return false
	}
	base := filepath.Base(path)
	for _, g := range s.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns in compile order
func (s *PatternSet) Patterns() []string {
	if s == nil {
		return nil
	}
	return s.patterns
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// SourceFileFilter accepts regular files whose extension is in extensions
// (ASCII case-insensitive) and whose base name matches none of excluded.
func SourceFileFilter(extensions []string, excluded *PatternSet) FileFilter {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			exts[ext] = true
		}
	}

	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}
		if !exts[strings.ToLower(filepath.Ext(info.Name()))] {
			return false
		}
		return !excluded.Match(path)
	}
}

// ExcludeDirectoryFilter rejects directories whose base name matches excluded.
// The walk root itself is always accepted.
func ExcludeDirectoryFilter(root string, excluded *PatternSet) DirectoryFilter {
	cleanRoot := filepath.Clean(root)
	return func(path string, info os.DirEntry) bool {
		if filepath.Clean(path) == cleanRoot {
			return true
		}
		return !excluded.Match(path)
	}
}

// FileProcessor walks directory trees and reads the files it finds
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	if reader == nil {
		reader = NewFileReader()
	}
	return &FileProcessor{
		fileReader: reader,
	}
}

// WalkFiles walks through files in a directory tree with filtering. Files are
// returned in lexical walk order.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})
	if err != nil {
		return matchedFiles, WrapProcessError(fmt.Sprintf("directory walk %s", rootDir), err)
	}

	return matchedFiles, nil
}

// CollectSourceFiles walks every root and returns the matching source files,
// deduplicated and sorted.
func (fp *FileProcessor) CollectSourceFiles(roots []string, extensions []string, excludeDirs, excludeFiles *PatternSet) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, root := range roots {
		matched, err := fp.WalkFiles(root, FileWalkOptions{
			FileFilter:      SourceFileFilter(extensions, excludeFiles),
			DirectoryFilter: ExcludeDirectoryFilter(root, excludeDirs),
			SkipErrors:      true,
		})
		if err != nil {
			return nil, err
		}
		for _, file := range matched {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads one file through the shared cache
func (fp *FileProcessor) ReadFile(path string) (string, error) {
	return fp.fileReader.ReadFile(path)
}

// GetFileReader returns the underlying FileReader for advanced operations
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
