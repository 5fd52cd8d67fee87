package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zero/internal/config"
	"github.com/vovakirdan/zero/internal/platform/web"
)

var flagHTTPAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve frames over HTTP",
	Long: `Start an HTTP server that renders scenes on request.

Endpoints:
  GET /health                           - Liveness check
  GET /scenes                           - Registered scenes as JSON
  GET /scenes/{id}/frame.{format}       - One frame as png, webp, tga or bmp
        ?w=&h=                            frame size (default: window size)
        ?frames=                          updates before drawing (default: 1)
        ?scale=                           integer upscale (default: 1)
  GET /scenes/{id}/stream?w=&h=         - Websocket of PNG frames at the tick rate

Examples:
  zero http
  zero http --http :9000
  curl -o orbit.png 'localhost:8080/scenes/orbit/frame.png?frames=30&scale=2'`,
	Run: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port)")
}

func runHTTP(_ *cobra.Command, _ []string) {
	cfg := loadConfig(config.Flags{HTTPAddr: flagHTTPAddr})
	logger := newLogger(cfg, "zero-http", false)

	rc, err := cfg.Runtime(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		fail("%v", err)
	}

	server := web.NewServer(web.Config{
		Address: cfg.Server.HTTPAddr,
		Runtime: rc,
		Logger:  logger,
	})

	fmt.Printf("Starting zero HTTP server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		fail("%v", err)
	}
}
