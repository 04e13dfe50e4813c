package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/generator"
	"github.com/toyz/jsonctx/internal/utils"
)

// DefaultConfigFile is read from the working directory when --config is not given
const DefaultConfigFile = ".jsonctxgen.toml"

// Line ending choices for rendered output
const (
	LineEndingAuto = "auto"
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Workers bounds the number of files read and parsed concurrently
	Workers int `toml:"workers"`

	Scan   ScanConfig   `toml:"scan"`
	Types  TypesConfig  `toml:"types"`
	Output OutputConfig `toml:"output"`
	Watch  WatchConfig  `toml:"watch"`
	Server ServerConfig `toml:"server"`

	// Verbose enables detailed logging
	Verbose bool `toml:"-"`
	// Quiet limits diagnostics to errors
	Quiet bool `toml:"-"`
}

// ScanConfig controls which files directory arguments expand to
type ScanConfig struct {
	Extensions   []string `toml:"extensions"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
}

// TypesConfig extends the built-in exclusion rules
type TypesConfig struct {
	Exclude         []string `toml:"exclude"`
	ExcludeSuffixes []string `toml:"exclude_suffixes"`
}

// OutputConfig controls where rendered declarations go
type OutputConfig struct {
	Clipboard  bool   `toml:"clipboard"`
	File       string `toml:"file"`
	LineEnding string `toml:"line_ending"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	Debounce time.Duration `toml:"debounce"`
}

// ServerConfig controls the HTTP endpoint
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Scan: ScanConfig{
			Extensions:  append([]string(nil), utils.DefaultSourceExtensions...),
			ExcludeDirs: append([]string(nil), utils.DefaultExcludeDirs...),
		},
		Output: OutputConfig{
			Clipboard:  true,
			LineEnding: LineEndingAuto,
		},
		Watch:  WatchConfig{Debounce: 500 * time.Millisecond},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads path on top of the defaults. A missing file yields the
// defaults unless the path was given explicitly.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "decode", err).
			WithSuggestion("check the file against the documented [scan], [types], [output], [watch] and [server] tables")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, errors.ConfigurationError(path, "unknown configuration keys: "+strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero values left by a partial file
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Workers == 0 {
		c.Workers = defaults.Workers
	}
	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = defaults.Scan.Extensions
	}
	if c.Output.LineEnding == "" {
		c.Output.LineEnding = defaults.Output.LineEnding
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate(path string) error {
	var problems *errors.MultipleErrors
	loc := errors.SourceLocation{File: path}

	add := func(field string, value interface{}, err error) {
		if err == nil {
			return
		}
		constraint := err.Error()
		if verr, ok := err.(utils.ValidationError); ok {
			field, value, constraint = verr.Field, verr.Value, verr.Message
		}
		errors.AddToMultiple(&problems, errors.NewValidationError(field, value, constraint).WithLocation(loc))
	}

	add("workers", c.Workers, utils.AtLeast("workers", 1)(c.Workers))
	add("scan.extensions", c.Scan.Extensions, utils.NewValidatorChain(
		utils.SliceNotEmpty[string]("scan.extensions"),
		utils.ValidateEach("scan.extensions", utils.HasPrefix("extension", ".")),
	).Validate(c.Scan.Extensions))
	add("output.line_ending", c.Output.LineEnding,
		utils.IsOneOf("output.line_ending", LineEndingAuto, LineEndingLF, LineEndingCRLF)(c.Output.LineEnding))
	add("watch.debounce", c.Watch.Debounce, utils.Custom("watch.debounce", "must not be negative",
		func(d time.Duration) bool { return d >= 0 })(c.Watch.Debounce))
	add("server.addr", c.Server.Addr, utils.NotEmpty("server.addr")(c.Server.Addr))

	for _, p := range append(append([]string(nil), c.Scan.ExcludeDirs...), c.Scan.ExcludeFiles...) {
		if _, err := utils.CompilePatterns([]string{p}); err != nil {
			add("scan.exclude", p, err)
		}
	}

	return problems.ErrOrNil()
}

// LineSeparator resolves output.line_ending to the separator placed between declarations
func (c *Config) LineSeparator() string {
	switch c.Output.LineEnding {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	default:
		return generator.LineSeparator()
	}
}

// Rules builds the exclusion rules from the built-in list and the [types] table
func (c *Config) Rules() *generator.Rules {
	return generator.NewRules(c.Types.Exclude, c.Types.ExcludeSuffixes)
}

// DiagnosticLevel maps the verbose and quiet switches to a diagnostic level
func (c *Config) DiagnosticLevel() utils.DiagnosticLevel {
	return utils.DiagnosticLevelFromFlags(c.Verbose, c.Quiet)
}
