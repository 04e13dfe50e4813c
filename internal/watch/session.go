package watch

import (
	"context"
	"os"
	"strings"

	"github.com/toyz/jsonctx/internal/cli"
	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/output"
)

// Session regenerates and redelivers declarations for a fixed argument list
// every time the watcher reports a change
type Session struct {
	generator *cli.Generator
	deliverer *output.Deliverer
	options   output.Options
	args      []string
}

// NewSession creates a session for args
func NewSession(generator *cli.Generator, deliverer *output.Deliverer, opts output.Options, args []string) *Session {
	if deliverer == nil {
		deliverer = output.NewDeliverer()
	}
	return &Session{
		generator: generator,
		deliverer: deliverer,
		options:   opts,
		args:      args,
	}
}

// Regenerate reruns generation over the session arguments after dropping the
// cached contents of changed, then delivers the result
func (s *Session) Regenerate(ctx context.Context, changed []string) (*cli.Result, error) {
	diagnostics := s.generator.Diagnostics()
	if len(changed) > 0 {
		diagnostics.Verbose("Changed: %s", strings.Join(changed, ", "))
	}
	s.generator.Invalidate(changed...)

	result, err := s.generator.Run(ctx, s.args)
	if err != nil {
		return nil, errors.WrapGenerateError("regenerate", strings.Join(s.args, " "), err)
	}

	delivery, err := s.generator.Deliver(result, s.deliverer, s.options)
	if err != nil {
		return nil, errors.WrapGenerateError("deliver", strings.Join(s.args, " "), err)
	}
	if !result.Empty() {
		diagnostics.Success("%d declarations delivered to %s", len(result.Names), delivery.Target)
	}
	return result, nil
}

// Run performs an initial generation and then regenerates on every debounced
// change until ctx is cancelled. Failures after the first run are reported
// and watching continues.
func (s *Session) Run(ctx context.Context) error {
	if _, err := s.Regenerate(ctx, nil); err != nil {
		return err
	}

	paths := s.watchPaths()
	if len(paths) == 0 {
		return errors.Newf(errors.ValidationErrorCode, "no existing paths to watch among %d arguments", len(s.args)).
			WithSuggestion("pass at least one existing file or directory")
	}

	cfg := s.generator.Config()
	watcher, err := NewWatcher(Options{
		Debounce:     cfg.Watch.Debounce,
		Extensions:   cfg.Scan.Extensions,
		ExcludeDirs:  cfg.Scan.ExcludeDirs,
		ExcludeFiles: cfg.Scan.ExcludeFiles,
		Diagnostics:  s.generator.Diagnostics(),
	}, func(changed []string) {
		if _, err := s.Regenerate(ctx, changed); err != nil && ctx.Err() == nil {
			s.generator.Reporter().ReportError(err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	s.generator.Diagnostics().Info("Watching %d paths for changes (Ctrl+C to stop)", len(paths))
	return watcher.Watch(ctx, paths)
}

func (s *Session) watchPaths() []string {
	paths := make([]string, 0, len(s.args))
	for _, raw := range s.args {
		arg := cli.CleanArgument(raw)
		if arg == "" {
			continue
		}
		if _, err := os.Stat(arg); err == nil {
			paths = append(paths, arg)
		}
	}
	return paths
}
