// Package osascript runs generated AppleScript through the osascript
// binary, one synchronous process per call.
package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

const (
	defaultBin     = "osascript"
	defaultTimeout = 60 * time.Second
	// defaultMaxOutputBytes caps captured stdout at 50 MiB.
	defaultMaxOutputBytes = 50 << 20
)

// Runner executes one script and returns its stdout.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Error is a failed script run. Stderr carries the interpreter's diagnostic
// when it produced one.
type Error struct {
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config controls the external process invocation.
type Config struct {
	// Bin is the interpreter binary (default "osascript").
	Bin string
	// Timeout bounds a single run (default 60s).
	Timeout time.Duration
	// MaxOutputBytes fails the run when stdout exceeds it (default 50 MiB).
	MaxOutputBytes int64
}

// Osascript implements Runner with exec.CommandContext.
type Osascript struct {
	bin       string
	timeout   time.Duration
	maxOutput int64
	logger    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Osascript {
	if cfg.Bin == "" {
		cfg.Bin = defaultBin
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = defaultMaxOutputBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Osascript{
		bin:       cfg.Bin,
		timeout:   cfg.Timeout,
		maxOutput: cfg.MaxOutputBytes,
		logger:    logger,
	}
}

// Run executes script via `<bin> -e <script>` and blocks until the process
// exits or the timeout fires.
func (o *Osascript) Run(ctx context.Context, script string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, o.bin, "-e", script)
	cmd.Stdout = &limitWriter{w: &stdout, remaining: o.maxOutput}
	cmd.Stderr = &stderr

	o.logger.Debug("running script", "bin", o.bin, "bytes", len(script))

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			err = fmt.Errorf("script timed out after %s", o.timeout)
		}
		return "", &Error{Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

var errOutputLimit = errors.New("script output exceeds size limit")

// limitWriter fails the copy instead of truncating once the budget is spent,
// so oversized output surfaces as a run failure.
type limitWriter struct {
	w         io.Writer
	remaining int64
}

func (l *limitWriter) Write(p []byte) (int, error) {
	if int64(len(p)) > l.remaining {
		return 0, errOutputLimit
	}
	l.remaining -= int64(len(p))
	return l.w.Write(p)
}
