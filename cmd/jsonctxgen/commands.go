package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/toyz/jsonctx/internal/cli"
	"github.com/toyz/jsonctx/internal/output"
	"github.com/toyz/jsonctx/internal/server"
	"github.com/toyz/jsonctx/internal/utils"
	"github.com/toyz/jsonctx/internal/watch"
)

// options holds the raw flag values; only flags the user set override the config file
type options struct {
	configPath string
	verbose    bool
	quiet      bool
	stdout     bool
	output     string
	workers    int
	lineEnding string
	addr       string
}

type app struct {
	stdout    io.Writer
	stderr    io.Writer
	clipboard output.Clipboard
	opts      options

	config      *cli.Config
	diagnostics *utils.DiagnosticSystem
	generator   *cli.Generator
}

func newApp(stdout, stderr io.Writer, clipboard output.Clipboard) *app {
	return &app{stdout: stdout, stderr: stderr, clipboard: clipboard}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonctxgen [flags] <file-or-dir>...",
		Short: "Generate [JsonSerializable] declarations from C# service sources",
		Long: `Scan C# sources for the return and parameter types of public class methods
and interface members, and emit one [JsonSerializable(typeof(T))] line per
distinct type, ready to paste onto a JsonSerializerContext.

Directories are scanned recursively for .cs files. The declarations are copied
to the clipboard; use --stdout or --output to send them elsewhere.

Examples:
  jsonctxgen ./Services                   # Copy declarations to the clipboard
  jsonctxgen --stdout Api.cs Users.cs     # Print declarations
  jsonctxgen -o JsonContext.g.txt ./src   # Write declarations to a file
  jsonctxgen watch ./src                  # Regenerate on every change
  jsonctxgen serve --addr :9090           # Serve POST /v1/generate`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Parent() == nil && len(args) == 0 {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: a.runGenerate,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", fmt.Sprintf("Configuration file (default %s)", cli.DefaultConfigFile))
	flags.BoolVar(&a.opts.verbose, "verbose", false, "Enable verbose output and per-file statistics")
	flags.BoolVar(&a.opts.quiet, "quiet", false, "Only show errors")
	flags.BoolVar(&a.opts.stdout, "stdout", false, "Print declarations instead of copying them to the clipboard")
	flags.StringVarP(&a.opts.output, "output", "o", "", "Write declarations to a file")
	flags.IntVar(&a.opts.workers, "workers", 0, "Number of files parsed concurrently (default number of CPUs)")
	flags.StringVar(&a.opts.lineEnding, "line-ending", cli.LineEndingAuto, "Separator between declarations: auto, lf or crlf")

	root.AddCommand(newWatchCommand(a), newServeCommand(a), newVersionCommand(a))
	return root
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file-or-dir>...",
		Short: "Regenerate declarations whenever a source file changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := watch.NewSession(a.generator, a.deliverer(), a.generator.OutputOptions(), args)
			return session.Run(cmd.Context())
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve declaration generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.config.Verbose {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}
			return server.New(a.generator).Run(cmd.Context(), a.config.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&a.opts.addr, "addr", "", "Listen address (default :8080)")
	return cmd
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "jsonctxgen %s\n", version)
		},
	}
}

// setup loads the configuration, applies the flags that were set and builds the generator
func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path := a.opts.configPath
	if path == "" {
		path = cli.DefaultConfigFile
	}

	cfg, err := cli.LoadConfig(path, flags.Changed("config"))
	if err != nil {
		return err
	}

	cfg.Verbose = a.opts.verbose
	cfg.Quiet = a.opts.quiet
	if flags.Changed("workers") {
		cfg.Workers = a.opts.workers
	}
	if flags.Changed("line-ending") {
		cfg.Output.LineEnding = strings.ToLower(a.opts.lineEnding)
	}
	if a.opts.stdout {
		cfg.Output.Clipboard = false
	}
	if flags.Changed("output") {
		cfg.Output.File = a.opts.output
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = a.opts.addr
	}
	if err := cfg.Validate(path); err != nil {
		return err
	}

	a.config = cfg
	a.diagnostics = utils.NewDiagnosticSystemWithWriter(cfg.DiagnosticLevel(), a.stderr)
	a.generator, err = cli.NewGeneratorWithDiagnostics(cfg, a.diagnostics)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		a.diagnostics.Header("configuration")
		a.diagnostics.Indent()
		a.diagnostics.List("Workers: %d", cfg.Workers)
		a.diagnostics.List("Extensions: %s", strings.Join(cfg.Scan.Extensions, ", "))
		a.diagnostics.List("Excluded directories: %s", strings.Join(cfg.Scan.ExcludeDirs, ", "))
		a.diagnostics.List("Line ending: %s", cfg.Output.LineEnding)
		a.diagnostics.Unindent()
	}
	return nil
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		cmd.SetOut(a.stderr)
		return cmd.Usage()
	}

	result, err := a.generator.Run(cmd.Context(), args)
	if err != nil {
		return err
	}
	if _, err := a.generator.Deliver(result, a.deliverer(), a.generator.OutputOptions()); err != nil {
		return err
	}

	a.reporter().ReportSuccess(result.Summary)
	return nil
}

func (a *app) deliverer() *output.Deliverer {
	return output.NewDelivererWith(a.clipboard, a.stdout)
}

// reporter writes to the command's stderr, falling back to default diagnostics
// when setup did not get far enough to build them
func (a *app) reporter() *cli.DiagnosticReporter {
	diagnostics := a.diagnostics
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystemWithWriter(utils.DiagnosticInfo, a.stderr)
	}
	return cli.NewDiagnosticReporterWithWriter(diagnostics, a.stderr)
}
