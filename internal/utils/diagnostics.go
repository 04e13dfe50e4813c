package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticLevelFromFlags maps the --quiet and --verbose flags to a level. Quiet wins.
func DiagnosticLevelFromFlags(verbose, quiet bool) DiagnosticLevel {
	switch {
	case quiet:
		return DiagnosticError
	case verbose:
		return DiagnosticVerbose
	default:
		return DiagnosticInfo
	}
}

// DiagnosticSystem provides structured, user-friendly output.
// All diagnostics go to one writer, stderr by default, so stdout only ever
// carries generated declarations. It is safe for concurrent use.
type DiagnosticSystem struct {
	mu        sync.Mutex
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	indent    int
}

// NewDiagnosticSystem creates a new diagnostic system writing to stderr
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return NewDiagnosticSystemWithWriter(level, os.Stderr)
}

// NewDiagnosticSystemWithWriter creates a diagnostic system writing to w.
// Colors follow the environment only when w is stderr.
func NewDiagnosticSystemWithWriter(level DiagnosticLevel, w io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: w == os.Stderr && shouldUseColors(),
		showTime:  level >= DiagnosticVerbose,
		output:    w,
	}
}

// NewQuietDiagnostics creates a diagnostic system that only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// Level returns the configured level
func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// level label colors
var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warnLabel    = color.New(color.FgYellow)
	infoLabel    = color.New(color.FgBlue)
	successLabel = color.New(color.FgGreen)
	verboseLabel = color.New(color.FgHiBlack)
	debugLabel   = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgCyan)
)

// Error outputs error messages (always shown unless silent)
func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage("ERROR", errorLabel, format, args...)
	}
}

// Warn outputs warning messages
func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage("WARN", warnLabel, format, args...)
	}
}

// Info outputs informational messages
func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage("INFO", infoLabel, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage("SUCCESS", successLabel, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage("VERBOSE", verboseLabel, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage("DEBUG", debugLabel, format, args...)
	}
}

// Notice prints a bare line regardless of level, for messages the user must see
// such as the clipboard fallback note. Only Silent suppresses it.
func (d *DiagnosticSystem) Notice(format string, args ...interface{}) {
	if d.level > DiagnosticSilent {
		d.writeLine(fmt.Sprintf(format, args...))
	}
}

// Header outputs the tool banner
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		d.writeLine(d.paint(headerColor, "jsonctxgen: "+message))
	}
}

// Subsection creates a subsection header
func (d *DiagnosticSystem) Subsection(title string) {
	if d.level >= DiagnosticInfo {
		d.writeLine("\n" + title + ":")
	}
}

// List outputs a bulleted list item
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeLine(d.getIndent() + "- " + fmt.Sprintf(format, args...))
	}
}

// Indent increases the indentation level
func (d *DiagnosticSystem) Indent() {
	d.mu.Lock()
	d.indent++
	d.mu.Unlock()
}

// Unindent decreases the indentation level
func (d *DiagnosticSystem) Unindent() {
	d.mu.Lock()
	if d.indent > 0 {
		d.indent--
	}
	d.mu.Unlock()
}

// Summary outputs a final summary with statistics, keys in sorted order
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n" + title + "\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "   %s: %v\n", key, stats[key])
	}
	d.writeLine(b.String())
}

// writeMessage is the internal message writing function
func (d *DiagnosticSystem) writeMessage(level string, label *color.Color, format string, args ...interface{}) {
	var output strings.Builder
	output.WriteString(d.getIndent())

	if d.showTime {
		output.WriteString(time.Now().Format("15:04:05 "))
	}

	output.WriteString(d.paint(label, "["+level+"]"))
	output.WriteString(" ")
	output.WriteString(fmt.Sprintf(format, args...))

	d.writeLine(output.String())
}

func (d *DiagnosticSystem) writeLine(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.output, line)
}

// paint applies c when colors are enabled for this system
func (d *DiagnosticSystem) paint(c *color.Color, s string) string {
	if !d.useColors {
		return s
	}
	painted := *c
	painted.EnableColor()
	return painted.Sprint(s)
}

// getIndent returns the current indentation string
func (d *DiagnosticSystem) getIndent() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
