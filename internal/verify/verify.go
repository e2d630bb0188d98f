// Package verify runs the reference FLAC decoder over files to check their
// integrity. The check is advisory: a missing decoder disables it with a
// one-time warning instead of failing the run.
package verify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single verification so a corrupt file cannot hang
// a large-tree run.
const DefaultTimeout = 2 * time.Minute

// Checker invokes `flac --test` per file.
type Checker struct {
	bin     string
	timeout time.Duration
}

// New probes for the flac executable on PATH. When it is missing the
// returned checker reports unavailable and every Verify is a no-op.
func New(timeout time.Duration) *Checker {
	return NewWithBinary("flac", timeout)
}

// NewWithBinary is New with a custom executable name, mainly for tests.
func NewWithBinary(bin string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		slog.Warn("couldn't find the FLAC decoder - integrity checks will be skipped", "binary", bin)
		return &Checker{timeout: timeout}
	}
	return &Checker{bin: path, timeout: timeout}
}

// Available reports whether the decoder was found at startup.
func (c *Checker) Available() bool {
	return c != nil && c.bin != ""
}

// Verify decodes the file, treating decoder warnings as errors. A timeout
// surfaces as context.DeadlineExceeded so callers can report it distinctly.
func (c *Checker) Verify(ctx context.Context, path string) error {
	if !c.Available() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, "--test", "--warnings-as-errors", "--silent", path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to verify '%s': %w", path, err)
	}
	return nil
}
