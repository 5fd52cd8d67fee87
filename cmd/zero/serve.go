package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/platform/tui"
	"github.com/vovakirdan/zero/internal/storage"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that gives every connection its own scene picker,
viewer and capture browser.

Captures made over SSH are written on the server and recorded with
source "ssh".

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.zero/host_key

Examples:
  zero serve                           # Listen on :23235 with auto-generated key
  zero serve --ssh :2222               # Listen on port 2222
  zero serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig(config.Flags{SSHAddr: flagSSHAddr})
	if flagHostKey != "" {
		cfg.Server.HostKey = flagHostKey
	}

	logger := newLogger(cfg, "zero-ssh", false)

	rc, err := cfg.Runtime(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(cfg, logger)
	if store != nil {
		onExit(func() { store.Close() })
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.SSHAddr,
		HostKeyPath: cfg.Server.HostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		Runtime:     rc,
		Capture:     captureConfig(cfg, storage.SourceSSH),
		Store:       store,
		Logger:      logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting zero SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		fail("%v", err)
	}
}
