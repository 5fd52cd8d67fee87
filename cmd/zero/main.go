// zero is a software rasterizer with terminal, SSH and HTTP front ends.
//
// Usage:
//
//	zero list                  - List available scenes
//	zero view [scene]          - View a scene in the terminal
//	zero menu                  - Pick scenes interactively
//	zero serve                 - Start SSH server for remote viewing
//	zero http                  - Serve frames over HTTP and websocket
//	zero render <scene>        - Render a scene to an image file
//	zero captures [scene]      - Show recorded captures
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.zero/config.yaml)
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.zero/captures.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/export"
	"github.com/vovakirdan/zero/internal/logging"
	"github.com/vovakirdan/zero/internal/platform/tui"
	"github.com/vovakirdan/zero/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/zero/internal/scenes/orbit"
	_ "github.com/vovakirdan/zero/internal/scenes/shapes"
	_ "github.com/vovakirdan/zero/internal/scenes/zero"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

// cleanups run in reverse order when the command returns or fails.
var cleanups []func()

func main() {
	err := rootCmd.Execute()
	runCleanups()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zero",
	Short: "zero - an anti-aliased software rasterizer",
	Long: `zero draws anti-aliased triangles and thick lines into an RGBA buffer
and shows the result in your terminal, over SSH or over HTTP.

Available commands:
  list      - Show all available scenes
  view      - View a scene directly
  menu      - Interactive scene picker
  serve     - Start SSH server for remote viewing
  http      - Serve frames over HTTP
  render    - Render a scene to a file
  captures  - List recorded captures

Examples:
  zero list
  zero view shapes
  zero menu --fps 30
  zero serve --ssh :2222
  zero render orbit --frames 60 --format webp --scale 2`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (updates per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to captures database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(capturesCmd)
}

// fail prints an error, runs the registered cleanups and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	runCleanups()
	os.Exit(1)
}

// onExit registers f to run before the process exits, including through fail.
func onExit(f func()) {
	cleanups = append(cleanups, f)
}

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// loadConfig loads the layered config, applies global and command flags,
// and validates the result.
func loadConfig(f config.Flags) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	f.TickRate = flagFPS
	f.DB = flagDBPath
	f.LogLevel = flagLogLevel
	cfg.Resolve(f)

	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger builds the command's logger; its file is closed on exit.
// Interactive commands own the terminal, so they only log when a log file
// is configured.
func newLogger(cfg config.Config, prefix string, interactive bool) *log.Logger {
	if interactive && cfg.Log.File == "" {
		return logging.Discard()
	}
	logger, closer, err := logging.New(logging.FromConfig(cfg.Log, prefix))
	if err != nil {
		fail("%v", err)
	}
	//nolint:errcheck // Nothing left to report to
	onExit(func() { closer.Close() })
	return logger
}

// openStore opens the captures database, or returns nil with a warning.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		logger.Warn("could not open captures database", "path", cfg.Storage.DB, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open captures database: %v\n", err)
		return nil
	}
	return store
}

// captureConfig builds the viewer capture settings from the config.
func captureConfig(cfg config.Config, source string) tui.CaptureConfig {
	format, err := export.ParseFormat(cfg.Export.Format)
	if err != nil {
		fail("%v", err)
	}
	return tui.CaptureConfig{
		Dir:    cfg.Export.Dir,
		Format: format,
		Scale:  cfg.Export.Scale,
		Source: source,
	}
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
