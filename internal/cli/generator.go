package cli

import (
	"context"
	stderrors "errors"
	"io/fs"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/generator"
	"github.com/toyz/jsonctx/internal/output"
	"github.com/toyz/jsonctx/internal/parser"
	"github.com/toyz/jsonctx/internal/utils"
)

// NoTypesMessage is printed on stdout when a run has nothing to emit
const NoTypesMessage = "No types found."

// Source is an in-memory source file
type Source struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Result is the outcome of one generation run
type Result struct {
	// Names are the canonical type names in output order
	Names []string
	// Output is the rendered declarations, empty when Names is empty
	Output  string
	Summary GenerationSummary
}

// Empty reports whether the run has nothing to emit
func (r *Result) Empty() bool {
	return len(r.Names) == 0
}

// fileOutcome is what one worker produces for one input
type fileOutcome struct {
	name    string
	skipped bool
	types   int
	methods int
	refs    []string
}

// Generator coordinates the CLI generation process: argument expansion,
// concurrent reading and parsing, the cross-file fold and rendering.
type Generator struct {
	config        *Config
	fileProcessor *utils.FileProcessor
	expander      *PathExpander
	parser        parser.SourceParser
	declarations  *generator.Generator
	diagnostics   *utils.DiagnosticSystem
	reporter      *DiagnosticReporter
}

// NewGenerator creates a CLI generator with diagnostics at the level implied by cfg
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewGeneratorWithDiagnostics(cfg, utils.NewDiagnosticSystem(cfg.DiagnosticLevel()))
}

// NewGeneratorWithDiagnostics creates a CLI generator reporting through diagnostics
func NewGeneratorWithDiagnostics(cfg *Config, diagnostics *utils.DiagnosticSystem) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(cfg.DiagnosticLevel())
	}

	fileProcessor := utils.NewFileProcessor()
	expander, err := NewPathExpander(cfg, fileProcessor)
	if err != nil {
		return nil, err
	}

	return &Generator{
		config:        cfg,
		fileProcessor: fileProcessor,
		expander:      expander,
		parser:        parser.NewParser(),
		declarations:  generator.NewGeneratorWithRules(cfg.Rules(), cfg.LineSeparator()),
		diagnostics:   diagnostics,
		reporter:      NewDiagnosticReporter(diagnostics),
	}, nil
}

// Config returns the configuration the generator was built with
func (g *Generator) Config() *Config {
	return g.config
}

// Diagnostics returns the diagnostic system used for progress and warnings
func (g *Generator) Diagnostics() *utils.DiagnosticSystem {
	return g.diagnostics
}

// Reporter returns the reporter used for errors and summaries
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Invalidate drops cached contents for paths so the next run re-reads them
func (g *Generator) Invalidate(paths ...string) {
	reader := g.fileProcessor.GetFileReader()
	for _, path := range paths {
		reader.InvalidateFile(path)
	}
}

// Run expands args into files and generates declarations from them
func (g *Generator) Run(ctx context.Context, args []string) (*Result, error) {
	expansion, err := g.expander.Expand(args)
	if err != nil {
		return nil, err
	}
	for _, missing := range expansion.Missing {
		g.diagnostics.Warn("Skipping %s: no such file or directory", missing)
	}

	result, err := g.GenerateFiles(ctx, expansion.Files)
	if err != nil {
		return nil, err
	}
	result.Summary.FilesMissing += len(expansion.Missing)
	return result, nil
}

// GenerateFiles reads and parses files on a bounded worker group and folds the results.
// A file that disappeared before it could be read is skipped with a warning; any
// other read failure aborts the run.
func (g *Generator) GenerateFiles(ctx context.Context, files []string) (*Result, error) {
	g.diagnostics.Verbose("Scanning %d files with %d workers", len(files), g.config.Workers)

	return g.generate(ctx, len(files), func(i int) (fileOutcome, error) {
		path := files[i]
		content, err := g.fileProcessor.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				g.diagnostics.Warn("Skipping %s: file no longer exists", path)
				return fileOutcome{name: path, skipped: true}, nil
			}
			return fileOutcome{}, errors.WrapFileSystemError("read", path, err).
				WithSuggestion("check the file permissions or exclude the file with scan.exclude_files")
		}
		return g.parseSource(path, content), nil
	})
}

// GenerateSources generates declarations from in-memory sources
func (g *Generator) GenerateSources(ctx context.Context, sources []Source) (*Result, error) {
	return g.generate(ctx, len(sources), func(i int) (fileOutcome, error) {
		return g.parseSource(sources[i].Name, sources[i].Content), nil
	})
}

func (g *Generator) parseSource(name, content string) fileOutcome {
	parsed := g.parser.Parse(content)
	refs := g.declarations.CollectTypeReferences(parsed.Types)

	g.diagnostics.Debug("%s: %d types, %d methods, %d references", name, len(parsed.Types), parsed.MethodCount(), len(refs))
	return fileOutcome{
		name:    name,
		types:   len(parsed.Types),
		methods: parsed.MethodCount(),
		refs:    refs,
	}
}

func (g *Generator) generate(ctx context.Context, n int, process func(i int) (fileOutcome, error)) (*Result, error) {
	start := time.Now()
	_, hitsBefore, _ := g.fileProcessor.GetFileReader().CacheStats()

	outcomes := make([]fileOutcome, n)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, g.config.Workers))

	for i := 0; i < n; i++ {
		if groupCtx.Err() != nil {
			break
		}
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome, err := process(i)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := generator.NewTypeNameSet()
	summary := GenerationSummary{Files: make([]FileReport, 0, n)}
	for _, outcome := range outcomes {
		if outcome.skipped {
			summary.FilesMissing++
			continue
		}
		set.Union(generator.NewTypeNameSet(g.declarations.Canonicalize(outcome.refs)...))

		summary.FilesScanned++
		summary.TypesFound += outcome.types
		summary.MethodsFound += outcome.methods
		summary.ReferencesFound += len(outcome.refs)
		summary.Files = append(summary.Files, FileReport{
			Path:       outcome.name,
			Types:      outcome.types,
			Methods:    outcome.methods,
			References: len(outcome.refs),
		})
	}

	result := &Result{Names: set.Sorted()}
	if text, ok := g.declarations.RenderNames(result.Names); ok {
		result.Output = text
	}

	_, hitsAfter, _ := g.fileProcessor.GetFileReader().CacheStats()
	summary.Declarations = len(result.Names)
	summary.CacheHits = hitsAfter - hitsBefore
	summary.Duration = time.Since(start)
	result.Summary = summary

	return result, nil
}

// Deliver prints NoTypesMessage for an empty result, otherwise hands the
// rendered text to deliverer and prints the clipboard fallback notice when needed.
func (g *Generator) Deliver(result *Result, deliverer *output.Deliverer, opts output.Options) (output.Delivery, error) {
	if result.Empty() {
		return output.Delivery{Target: output.TargetStdout}, deliverer.Print(NoTypesMessage)
	}

	delivery, err := deliverer.Deliver(result.Output, opts)
	if err != nil {
		return delivery, err
	}
	if delivery.FellBack() {
		g.diagnostics.Notice(output.ClipboardFallbackNotice)
		g.diagnostics.Debug("Clipboard error: %v", delivery.ClipboardErr)
	}
	return delivery, nil
}

// OutputOptions derives delivery options from the [output] table
func (g *Generator) OutputOptions() output.Options {
	return output.Options{
		Clipboard: g.config.Output.Clipboard,
		File:      g.config.Output.File,
	}
}
