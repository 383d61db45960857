package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"photobot/internal/audit"
	"photobot/internal/config"
	"photobot/internal/osascript"
	"photobot/internal/photos"
	"photobot/internal/server"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	// stdout belongs to the MCP transport; all logging goes to stderr.
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "photobot",
		Short: "photobot: MCP server for the macOS Photos app",
		Long:  "photobot exposes the Photos.app scripting surface as MCP tools over stdio.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default: ~/.photobot/config.yaml)")

	root.AddCommand(initCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(callCmd())
	root.AddCommand(toolsCmd())
	root.AddCommand(auditCmd())
	root.AddCommand(doctorCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfigPath returns the config path from --config flag or default.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	return cfg, nil
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newDispatcher wires the runner, optional audit store, and registry from cfg.
// The returned closer releases the audit store when enabled.
func newDispatcher(cfg *config.Config) (*photos.Dispatcher, func(), error) {
	runner := osascript.New(osascript.Config{
		Bin:            cfg.Osascript.Bin,
		Timeout:        time.Duration(cfg.Osascript.TimeoutSeconds) * time.Second,
		MaxOutputBytes: cfg.Osascript.MaxOutputBytes,
	}, logger)

	var recorder photos.Recorder
	closer := func() {}
	if cfg.Audit.Enabled {
		store, err := audit.Open(cfg.Audit.DBPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("audit store: %w", err)
		}
		recorder = store
		closer = func() { store.Close() }
	}

	dispatcher := photos.NewDispatcher(runner, photos.Options{
		App:       cfg.App.Name,
		ExportDir: cfg.Export.Dir,
		Audit:     recorder,
		Logger:    logger,
	})
	return dispatcher, closer, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := resolveConfigPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.Save(path, config.Defaults()); err != nil {
				return err
			}
			logger.Info("initialized", "config", path)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dispatcher, closeAudit, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			defer closeAudit()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving MCP on stdio", "app", cfg.App.Name, "version", version)
			return server.Run(ctx, server.New(dispatcher))
		},
	}
}

func callCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Dispatch a single tool call and print the result",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dispatcher, closeAudit, err := newDispatcher(cfg)
			if err != nil {
				return err
			}
			defer closeAudit()

			bag := photos.Args{}
			if len(cmdArgs) == 2 {
				if err := json.Unmarshal([]byte(cmdArgs[1]), &bag); err != nil {
					return fmt.Errorf("parse args: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result := dispatcher.Dispatch(ctx, cmdArgs[0], bag)
			for _, content := range result.Content {
				if text, ok := content.(*mcp.TextContent); ok {
					fmt.Println(text.Text)
				}
			}
			if result.IsError {
				os.Exit(1)
			}
			return nil
		},
	}
}

func toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List registered tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, desc := range photos.Descriptors(cfg.App.Name, cfg.Export.Dir) {
				var required []string
				for _, p := range desc.Params {
					if p.Required {
						required = append(required, p.Name)
					}
				}
				line := desc.Name
				if len(required) > 0 {
					line += " (requires: " + strings.Join(required, ", ") + ")"
				}
				fmt.Printf("%-60s %s\n", line, desc.Description)
			}
			return nil
		},
	}
}

func auditCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent tool calls from the audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := audit.Open(cfg.Audit.DBPath, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.OK {
					status = "error"
				}
				fmt.Printf("%s  %-28s %-5s %s  %s\n",
					e.CreatedAt.Format(time.RFC3339), e.Tool, status, e.Elapsed, e.Args)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
