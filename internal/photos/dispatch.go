package photos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"photobot/internal/osascript"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Recorder receives one entry per dispatched call. Implemented by the audit
// store; nil disables recording.
type Recorder interface {
	Record(ctx context.Context, tool string, args map[string]any, ok bool, result string, elapsed time.Duration) error
}

// Options configures a Dispatcher.
type Options struct {
	// App is the host application name, e.g. "Photos".
	App string
	// ExportDir is the destination used when export calls omit one.
	ExportDir string
	// Audit optionally records every dispatched call.
	Audit Recorder
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// Dispatcher owns the operation registry and turns tool calls into
// AppleScript runs. It is stateless across calls.
type Dispatcher struct {
	registry map[string]Descriptor
	ordered  []Descriptor
	runner   osascript.Runner
	audit    Recorder
	logger   *slog.Logger
}

func NewDispatcher(runner osascript.Runner, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ordered := Descriptors(opts.App, opts.ExportDir)
	registry := make(map[string]Descriptor, len(ordered))
	for _, desc := range ordered {
		registry[desc.Name] = desc
	}
	return &Dispatcher{
		registry: registry,
		ordered:  ordered,
		runner:   runner,
		audit:    opts.Audit,
		logger:   logger,
	}
}

// Descriptors returns the registry rows in declaration order.
func (d *Dispatcher) Descriptors() []Descriptor {
	return d.ordered
}

// Dispatch runs one tool call and always returns an envelope; failures are
// reported through IsError, never as a Go error or panic.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args Args) *mcp.CallToolResult {
	start := time.Now()
	result := d.dispatch(ctx, name, args)
	elapsed := time.Since(start)

	d.logger.Debug("dispatched tool call",
		"tool", name, "error", result.IsError, "elapsed", elapsed)

	if d.audit != nil {
		if err := d.audit.Record(ctx, name, args, !result.IsError, resultText(result), elapsed); err != nil {
			d.logger.Warn("audit record failed", "tool", name, "err", err)
		}
	}
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args Args) (result *mcp.CallToolResult) {
	defer func() {
		if r := recover(); r != nil {
			result = errorResult(fmt.Sprintf("Error: %v", r))
		}
	}()

	desc, ok := d.registry[name]
	if !ok {
		return errorResult("Unknown tool: " + name)
	}

	for _, p := range desc.Params {
		if p.Required && !args.Has(p.Name) {
			return errorResult(p.Name + " is required")
		}
	}

	if desc.ExportDest != nil {
		dest := desc.ExportDest(args)
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return errorResult("Error: " + err.Error())
		}
	}

	out, err := d.runner.Run(ctx, desc.Build(args))
	if err != nil {
		return errorResult("Error: " + diagnostic(err))
	}
	return textResult(desc.Label + strings.TrimSpace(out))
}

// diagnostic prefers the runner's stderr channel over the generic error text.
func diagnostic(err error) string {
	var runErr *osascript.Error
	if errors.As(err, &runErr) {
		if msg := strings.TrimSpace(runErr.Stderr); msg != "" {
			return msg
		}
	}
	return err.Error()
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if text, ok := result.Content[0].(*mcp.TextContent); ok {
		return text.Text
	}
	return ""
}
