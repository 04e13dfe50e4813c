// Package output delivers rendered declarations to the clipboard, a file or stdout.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/toyz/jsonctx/internal/errors"
)

// Target names where a delivery ended up
type Target string

const (
	TargetClipboard Target = "clipboard"
	TargetStdout    Target = "stdout"
	TargetFile      Target = "file"
)

// ClipboardFallbackNotice is printed on stderr when the clipboard could not be set
const ClipboardFallbackNotice = "(Could not set clipboard; printed to stdout.)"

// Clipboard is the system clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through github.com/atotto/clipboard
type SystemClipboard struct{}

// WriteAll implements Clipboard
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// Options selects the delivery target. File wins over Clipboard; with neither the text goes to stdout.
type Options struct {
	Clipboard bool
	File      string
}

// Delivery reports the outcome of Deliver
type Delivery struct {
	Target Target
	Path   string
	// ClipboardErr is set when the clipboard was requested but failed and stdout was used instead
	ClipboardErr error
}

// FellBack reports whether stdout was used because the clipboard failed
func (d Delivery) FellBack() bool {
	return d.ClipboardErr != nil
}

// Deliverer sends rendered text to its destination
type Deliverer struct {
	clipboard Clipboard
	stdout    io.Writer
}

// NewDeliverer creates a deliverer using the system clipboard and os.Stdout
func NewDeliverer() *Deliverer {
	return NewDelivererWith(SystemClipboard{}, os.Stdout)
}

// NewDelivererWith creates a deliverer with an explicit clipboard and stdout
func NewDelivererWith(cb Clipboard, stdout io.Writer) *Deliverer {
	if cb == nil {
		cb = SystemClipboard{}
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Deliverer{clipboard: cb, stdout: stdout}
}

// Deliver writes text to the target chosen by opts. Only file and stdout
// failures are returned; a clipboard failure falls back to stdout.
func (d *Deliverer) Deliver(text string, opts Options) (Delivery, error) {
	if opts.File != "" {
		if err := writeFile(opts.File, text); err != nil {
			return Delivery{}, errors.WrapOutputError(opts.File, err)
		}
		return Delivery{Target: TargetFile, Path: opts.File}, nil
	}

	var delivery Delivery
	if opts.Clipboard {
		err := d.clipboard.WriteAll(text)
		if err == nil {
			return Delivery{Target: TargetClipboard}, nil
		}
		delivery.ClipboardErr = err
	}

	if err := d.Print(text); err != nil {
		return Delivery{}, err
	}
	delivery.Target = TargetStdout
	return delivery, nil
}

// Print writes text and a trailing newline to stdout
func (d *Deliverer) Print(text string) error {
	if _, err := fmt.Fprintln(d.stdout, text); err != nil {
		return errors.WrapOutputError(string(TargetStdout), err)
	}
	return nil
}

func writeFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text+"\n"), 0644)
}
