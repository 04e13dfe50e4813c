package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticLevelFromFlags(t *testing.T) {
	assert.Equal(t, DiagnosticInfo, DiagnosticLevelFromFlags(false, false))
	assert.Equal(t, DiagnosticVerbose, DiagnosticLevelFromFlags(true, false))
	assert.Equal(t, DiagnosticError, DiagnosticLevelFromFlags(false, true))
	assert.Equal(t, DiagnosticError, DiagnosticLevelFromFlags(true, true))
}

func TestDiagnosticSystem_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticWarn, &buf)

	d.Error("broken %s", "file")
	d.Warn("skipping %d", 2)
	d.Info("hidden")
	d.Verbose("hidden")
	d.Debug("hidden")
	d.Subsection("hidden")

	assert.Equal(t, "[ERROR] broken file\n[WARN] skipping 2\n", buf.String())
}

func TestDiagnosticSystem_SilentSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticSilent, &buf)

	d.Error("x")
	d.Notice("y")

	assert.Empty(t, buf.String())
}

func TestDiagnosticSystem_NoticeIgnoresQuiet(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticError, &buf)

	d.Notice("(Could not set clipboard; printed to stdout.)")

	assert.Equal(t, "(Could not set clipboard; printed to stdout.)\n", buf.String())
}

func TestDiagnosticSystem_Formatting(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticInfo, &buf)

	d.Header("scanning 2 paths")
	d.Subsection("Files")
	d.Indent()
	d.List("%s", "A.cs")
	d.Unindent()
	d.Unindent()
	d.Success("done")

	assert.Equal(t, "jsonctxgen: scanning 2 paths\n\nFiles:\n  - A.cs\n[SUCCESS] done\n", buf.String())
}

func TestDiagnosticSystem_SummarySortsKeys(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticInfo, &buf)

	d.Summary("Summary", map[string]interface{}{"types": 3, "files": 2})

	out := buf.String()
	assert.True(t, strings.Index(out, "files: 2") < strings.Index(out, "types: 3"))
	assert.Contains(t, out, "\nSummary\n")
}

func TestDiagnosticSystem_VerboseShowsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	d := NewDiagnosticSystemWithWriter(DiagnosticVerbose, &buf)

	d.Verbose("parsed %s", "A.cs")

	assert.Regexp(t, `^\d\d:\d\d:\d\d \[VERBOSE\] parsed A\.cs\n$`, buf.String())
	assert.Equal(t, DiagnosticVerbose, d.Level())
}
