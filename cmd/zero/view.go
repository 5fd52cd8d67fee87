package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/platform/tui"
	"github.com/vovakirdan/zero/internal/registry"
	"github.com/vovakirdan/zero/internal/storage"
)

var viewCmd = &cobra.Command{
	Use:   "view [scene]",
	Short: "View a scene in the terminal",
	Long: `Run a scene in the terminal. Two pixel rows share one text row, so the
frame is as wide as the terminal and twice as tall as its rows minus the
status lines.

Controls:
  Arrows/WASD  - Pan
  +/-          - Zoom
  P/Space      - Pause
  R            - Reset
  Ctrl+S       - Capture the frame to the export directory
  ?            - Toggle help
  Esc/Q        - Quit

Examples:
  zero view
  zero view orbit --fps 30`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func runView(_ *cobra.Command, args []string) {
	sceneID := "zero"
	if len(args) > 0 {
		sceneID = args[0]
	}

	// Check if scene exists
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'zero list' to see available scenes.")
		os.Exit(1)
	}

	cfg := loadConfig(config.Flags{})
	logger := newLogger(cfg, "zero", true)

	scene, err := registry.Create(sceneID)
	if err != nil {
		fail("creating scene: %v", err)
	}

	rc, err := cfg.Runtime(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		fail("%v", err)
	}

	// Continue without storage; captures are still written to disk
	store := openStore(cfg, logger)
	if store != nil {
		onExit(func() { store.Close() })
	}

	cols, rows := terminalSize()
	_, runErr := tui.Run(scene, store, tui.ViewerConfig{
		Runtime: rc,
		Capture: captureConfig(cfg, storage.SourceTUI),
		Cols:    cols,
		Rows:    rows,
		Logger:  logger,
	})

	if runErr != nil {
		fail("running scene: %v", runErr)
	}
}
