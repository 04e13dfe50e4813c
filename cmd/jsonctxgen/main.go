package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/toyz/jsonctx/internal/output"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, output.SystemClipboard{})
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer, clipboard output.Clipboard) int {
	a := newApp(stdout, stderr, clipboard)
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.reporter().ReportError(err)
		return 1
	}
	return 0
}
