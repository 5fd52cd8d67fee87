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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start zero in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a scene, Tab for the
capture browser. B in a scene returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open scene
  Tab          - Browse captures
  Q            - Quit

Examples:
  zero menu
  zero menu --fps 30
  zero menu --db ./captures.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig(config.Flags{})
	logger := newLogger(cfg, "zero", true)

	rc, err := cfg.Runtime(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(cfg, logger)
	if store != nil {
		onExit(func() { store.Close() })
	}
	capture := captureConfig(cfg, storage.SourceTUI)
	cols, rows := terminalSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cols, rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cols, rows = menuResult.Cols, menuResult.Rows

		if menuResult.Quit {
			break
		}

		if menuResult.WantsCaptures {
			goBack, capErr := tui.RunCaptures(store, cols, rows)
			if capErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", capErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from capture browser
		}

		if menuResult.SceneID == "" {
			break
		}

		scene, err := registry.Create(menuResult.SceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		back, err := tui.Run(scene, store, tui.ViewerConfig{
			Runtime: rc,
			Capture: capture,
			Cols:    cols,
			Rows:    rows,
			Logger:  logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		}
		if !back {
			break
		}
	}

}
