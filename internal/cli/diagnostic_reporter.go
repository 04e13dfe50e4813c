package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/utils"
)

// GenerationSummary collects the statistics of one generation run
type GenerationSummary struct {
	FilesScanned    int
	FilesMissing    int
	TypesFound      int
	MethodsFound    int
	ReferencesFound int
	Declarations    int
	CacheHits       int64
	Duration        time.Duration
	Files           []FileReport
}

// FileReport holds the per-file counts shown in verbose mode
type FileReport struct {
	Path       string `json:"path"`
	Types      int    `json:"types"`
	Methods    int    `json:"methods"`
	References int    `json:"references"`
}

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
	out         io.Writer
	useColors   bool
}

// NewDiagnosticReporter creates a reporter that writes errors to stderr
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return NewDiagnosticReporterWithWriter(diagnostics, os.Stderr)
}

// NewDiagnosticReporterWithWriter creates a reporter that writes errors to w.
// Colors are only used when w is stderr.
func NewDiagnosticReporterWithWriter(diagnostics *utils.DiagnosticSystem, w io.Writer) *DiagnosticReporter {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if w == nil {
		w = os.Stderr
	}
	return &DiagnosticReporter{
		diagnostics: diagnostics,
		out:         w,
		useColors:   w == os.Stderr && !color.NoColor,
	}
}

// ReportWarning reports a warning through the diagnostic system
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	r.diagnostics.Warn("%s", message)
	if r.diagnostics.Level() >= utils.DiagnosticVerbose {
		r.diagnostics.Indent()
		for _, suggestion := range suggestions {
			r.diagnostics.List("%s", suggestion)
		}
		r.diagnostics.Unindent()
	}
}

// ReportError prints err with its code, location, context and suggestions.
// Collected errors are reported one after another.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil || r.diagnostics.Level() == utils.DiagnosticSilent {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && multi.Count() > 1 {
		r.printf("%s %d problems found\n", r.paint(color.New(color.FgRed, color.Bold), "ERROR:"), multi.Count())
		for i, inner := range multi.Errors {
			r.printf("\n%d. ", i+1)
			r.reportCodedError(inner)
		}
		r.printf("\n")
		return
	}

	var coded errors.CodedError
	if multi != nil && multi.Count() == 1 {
		coded = multi.Errors[0]
	}
	if coded != nil || stderrors.As(err, &coded) {
		r.printf("%s ", r.paint(color.New(color.FgRed, color.Bold), "ERROR:"))
		r.reportCodedError(coded)
		r.printf("\n")
		return
	}

	r.printf("%s %s\n", r.paint(color.New(color.FgRed, color.Bold), "ERROR:"), err.Error())
}

func (r *DiagnosticReporter) reportCodedError(err errors.CodedError) {
	r.printf("%s\n", err.Error())
	r.printf("   Type: %s\n", err.ErrorCode())

	if loc := err.Location(); !loc.IsEmpty() {
		r.printf("   Location: %s\n", loc)
	}

	if ctx := err.Context(); len(ctx) > 0 {
		keys := make([]string, 0, len(ctx))
		for key := range ctx {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		r.printf("   Context:\n")
		for _, key := range keys {
			r.printf("      %s: %v\n", formatContextKey(key), ctx[key])
		}
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printf("   Suggestions:\n")
		for i, suggestion := range suggestions {
			r.printf("      %d. %s\n", i+1, suggestion)
		}
	}
}

// ReportSuccess prints the run summary, with per-file counts in verbose mode
func (r *DiagnosticReporter) ReportSuccess(summary GenerationSummary) {
	if r.diagnostics.Level() >= utils.DiagnosticVerbose && len(summary.Files) > 0 {
		r.diagnostics.Subsection("Files")
		r.diagnostics.Indent()
		for _, file := range summary.Files {
			r.diagnostics.List("%s: %d types, %d methods, %d references", file.Path, file.Types, file.Methods, file.References)
		}
		r.diagnostics.Unindent()
	}

	r.diagnostics.Summary("Generation complete", map[string]interface{}{
		"Files scanned":        summary.FilesScanned,
		"Files skipped":        summary.FilesMissing,
		"Types found":          summary.TypesFound,
		"Methods found":        summary.MethodsFound,
		"Declarations emitted": summary.Declarations,
		"Cache hits":           summary.CacheHits,
		"Duration":             summary.Duration.Round(time.Millisecond),
	})
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *DiagnosticReporter) paint(c *color.Color, s string) string {
	if !r.useColors {
		return s
	}
	return c.Sprint(s)
}
