package cli

import (
	"os"
	"strings"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/utils"
)

// Expansion is the result of turning command-line arguments into source files
type Expansion struct {
	// Files holds explicit files first, in argument order, then each directory's sources
	Files []string
	// Missing holds arguments that named no existing path
	Missing []string
}

// PathExpander turns file and directory arguments into the list of files to scan
type PathExpander struct {
	fileProcessor *utils.FileProcessor
	extensions    []string
	excludeDirs   *utils.PatternSet
	excludeFiles  *utils.PatternSet
}

// NewPathExpander creates an expander using the [scan] settings of cfg
func NewPathExpander(cfg *Config, fileProcessor *utils.FileProcessor) (*PathExpander, error) {
	excludeDirs, err := utils.CompilePatterns(cfg.Scan.ExcludeDirs)
	if err != nil {
		return nil, errors.WrapConfigurationError("scan.exclude_dirs", "compile", err)
	}
	excludeFiles, err := utils.CompilePatterns(cfg.Scan.ExcludeFiles)
	if err != nil {
		return nil, errors.WrapConfigurationError("scan.exclude_files", "compile", err)
	}
	if fileProcessor == nil {
		fileProcessor = utils.NewFileProcessor()
	}

	return &PathExpander{
		fileProcessor: fileProcessor,
		extensions:    cfg.Scan.Extensions,
		excludeDirs:   excludeDirs,
		excludeFiles:  excludeFiles,
	}, nil
}

// CleanArgument trims whitespace and the surrounding double quotes some shells leave on paths
func CleanArgument(arg string) string {
	return strings.Trim(strings.TrimSpace(arg), `"`)
}

// Expand resolves args. Blank arguments are skipped, existing files are taken
// as given whatever their extension, and directories are walked recursively.
// A path appearing twice is scanned once.
func (e *PathExpander) Expand(args []string) (*Expansion, error) {
	result := &Expansion{Files: make([]string, 0), Missing: make([]string, 0)}
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result.Files = append(result.Files, path)
		}
	}

	var dirs []string
	for _, raw := range args {
		arg := CleanArgument(raw)
		if arg == "" {
			continue
		}

		info, err := os.Stat(arg)
		switch {
		case err != nil:
			result.Missing = append(result.Missing, arg)
		case info.IsDir():
			dirs = append(dirs, arg)
		default:
			add(arg)
		}
	}

	if len(dirs) > 0 {
		files, err := e.fileProcessor.CollectSourceFiles(dirs, e.extensions, e.excludeDirs, e.excludeFiles)
		if err != nil {
			return nil, errors.WrapFileSystemError("walk", strings.Join(dirs, ", "), err)
		}
		for _, file := range files {
			add(file)
		}
	}

	return result, nil
}
