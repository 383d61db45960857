package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"photobot/internal/audit"
	"photobot/internal/config"

	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run diagnostic checks on your photobot installation",
		Long: `Verifies that photobot's configuration, the osascript binary, the export
directory, and the audit database are correctly set up. Reports pass/fail
for each check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := resolveConfigPath()
			fmt.Printf("photobot doctor v%s\n\n", version)

			passed := 0
			failed := 0
			warned := 0

			// 1. Config file
			if _, err := os.Stat(cfgPath); err != nil {
				printWarn("Config file", fmt.Sprintf("not found at %s (defaults in effect)", cfgPath))
				warned++
			} else {
				printPass("Config file", cfgPath)
				passed++
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				printFail("Config validation", err.Error())
				failed++
				fmt.Printf("\n%d passed, %d failed, %d warnings\n", passed, failed, warned)
				return nil
			}
			printPass("Config validation", "valid")
			passed++

			// 2. osascript binary
			if path, err := exec.LookPath(cfg.Osascript.Bin); err != nil {
				printFail("Script runner", fmt.Sprintf("%s not found in PATH", cfg.Osascript.Bin))
				failed++
			} else {
				printPass("Script runner", path)
				passed++
			}

			// 3. Export directory writable
			if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
				printFail("Export directory", err.Error())
				failed++
			} else if err := checkWritable(cfg.Export.Dir); err != nil {
				printFail("Export directory", err.Error())
				failed++
			} else {
				printPass("Export directory", cfg.Export.Dir)
				passed++
			}

			// 4. Audit database
			if cfg.Audit.Enabled {
				store, err := audit.Open(cfg.Audit.DBPath, logger)
				if err != nil {
					printFail("Audit database", err.Error())
					failed++
				} else {
					store.Close()
					printPass("Audit database", cfg.Audit.DBPath)
					passed++
				}
			} else {
				printWarn("Audit database", "disabled")
				warned++
			}

			fmt.Printf("\n%d passed, %d failed, %d warnings\n", passed, failed, warned)
			return nil
		},
	}
}

func checkWritable(dir string) error {
	probe := filepath.Join(dir, ".photobot-doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("not writable: %w", err)
	}
	return os.Remove(probe)
}

func printPass(check, detail string) {
	fmt.Printf("  [pass] %-20s %s\n", check, detail)
}

func printFail(check, detail string) {
	fmt.Printf("  [FAIL] %-20s %s\n", check, detail)
}

func printWarn(check, detail string) {
	fmt.Printf("  [warn] %-20s %s\n", check, detail)
}
