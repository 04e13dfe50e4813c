package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/generator"
	"github.com/toyz/jsonctx/internal/utils"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, []string{".cs"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"bin", "obj", ".git", ".vs"}, cfg.Scan.ExcludeDirs)
	assert.True(t, cfg.Output.Clipboard)
	assert.Empty(t, cfg.Output.File)
	assert.Equal(t, LineEndingAuto, cfg.Output.LineEnding)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate(""))
}

func TestDefaultConfig_SlicesAreCopies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.ExcludeDirs[0] = "changed"

	assert.Equal(t, "bin", utils.DefaultExcludeDirs[0])
}

func TestLoadConfig_MissingDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")

	_, err := LoadConfig(path, true)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
	assert.Contains(t, err.Error(), "nope.toml")
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeConfig(t, `
workers = 2

[output]
clipboard = false
file = "JsonContext.g.txt"

[types]
exclude = ["Guid"]
exclude_suffixes = ["Context"]

[watch]
debounce = "250ms"
`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Output.Clipboard)
	assert.Equal(t, "JsonContext.g.txt", cfg.Output.File)
	assert.Equal(t, LineEndingAuto, cfg.Output.LineEnding)
	assert.Equal(t, []string{".cs"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"Guid"}, cfg.Types.Exclude)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
[scan]
extension = [".cs"]
`)

	_, err := LoadConfig(path, true)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
	assert.Contains(t, err.Error(), "scan.extension")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "[output\nclipboard = yes\n")

	_, err := LoadConfig(path, true)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestLoadConfig_InvalidValuesAreCollected(t *testing.T) {
	path := writeConfig(t, `
workers = -1

[scan]
extensions = ["cs"]

[output]
line_ending = "cr"
`)

	_, err := LoadConfig(path, true)
	require.Error(t, err)

	multi, ok := err.(*errors.MultipleErrors)
	require.True(t, ok, "expected *errors.MultipleErrors, got %T", err)
	assert.Equal(t, 3, multi.Count())
	assert.True(t, multi.HasCode(errors.ValidationErrorCode))
	for _, e := range multi.Errors {
		assert.Equal(t, path, e.Location().File)
	}
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "output.line_ending")
	assert.Contains(t, err.Error(), "scan.extensions[0]")
}

func TestConfig_ValidateRejectsBadPattern(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.ExcludeFiles = []string{"[unclosed"}

	err := cfg.Validate("")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ValidationErrorCode))
}

func TestConfig_LineSeparator(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, generator.LineSeparator(), cfg.LineSeparator())

	cfg.Output.LineEnding = LineEndingLF
	assert.Equal(t, "\n", cfg.LineSeparator())

	cfg.Output.LineEnding = LineEndingCRLF
	assert.Equal(t, "\r\n", cfg.LineSeparator())
}

func TestConfig_Rules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Types.Exclude = []string{"Guid"}
	cfg.Types.ExcludeSuffixes = []string{"Context"}

	rules := cfg.Rules()
	assert.True(t, rules.Excludes("Guid"))
	assert.True(t, rules.Excludes("DbContext"))
	assert.True(t, rules.Excludes("int"))
	assert.False(t, rules.Excludes("UserDto"))
}

func TestConfig_DiagnosticLevel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, utils.DiagnosticInfo, cfg.DiagnosticLevel())

	cfg.Verbose = true
	assert.Equal(t, utils.DiagnosticVerbose, cfg.DiagnosticLevel())

	cfg.Quiet = true
	assert.Equal(t, utils.DiagnosticError, cfg.DiagnosticLevel())
}
