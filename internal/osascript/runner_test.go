package osascript

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// writeFakeBin creates a shell stand-in for osascript. It receives the same
// argv shape ("-e", script), so $2 is the script text.
func writeFakeBin(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-osascript")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake bin: %v", err)
	}
	return path
}

func TestRun_CapturesStdout(t *testing.T) {
	bin := writeFakeBin(t, `printf '%s' "$2"`)
	runner := New(Config{Bin: bin}, testLogger())

	out, err := runner.Run(context.Background(), "return 42")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "return 42" {
		t.Errorf("expected script echoed back, got %q", out)
	}
}

func TestRun_FailureCarriesStderr(t *testing.T) {
	bin := writeFakeBin(t, `echo "execution error: boom (-1728)" >&2; exit 1`)
	runner := New(Config{Bin: bin}, testLogger())

	_, err := runner.Run(context.Background(), "whatever")
	if err == nil {
		t.Fatal("expected error")
	}
	var runErr *Error
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(runErr.Stderr, "execution error: boom (-1728)") {
		t.Errorf("stderr not captured: %q", runErr.Stderr)
	}
}

func TestRun_Timeout(t *testing.T) {
	bin := writeFakeBin(t, `sleep 2`)
	runner := New(Config{Bin: bin, Timeout: 100 * time.Millisecond}, testLogger())

	start := time.Now()
	_, err := runner.Run(context.Background(), "whatever")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout did not fire promptly")
	}
}

func TestRun_OutputLimit(t *testing.T) {
	bin := writeFakeBin(t, `head -c 1024 /dev/zero`)
	runner := New(Config{Bin: bin, MaxOutputBytes: 64}, testLogger())

	_, err := runner.Run(context.Background(), "whatever")
	if err == nil {
		t.Fatal("expected output limit error")
	}
	if !errors.Is(err, errOutputLimit) {
		t.Errorf("expected errOutputLimit, got %v", err)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	runner := New(Config{Bin: filepath.Join(t.TempDir(), "nope")}, testLogger())

	_, err := runner.Run(context.Background(), "whatever")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var runErr *Error
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if strings.TrimSpace(runErr.Stderr) != "" {
		t.Errorf("expected empty stderr, got %q", runErr.Stderr)
	}
}
