package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/zero.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/zero.yaml and is used if the embedded file fails to parse.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Zero Physics",
			Width:  320,
			Height: 240,
		},
		Loop: LoopConfig{
			TickRate: 60,
		},
		Palette: PaletteConfig{
			Background: "#48b2e8",
			Foreground: "#b2b2b2",
		},
		Camera: CameraConfig{
			FOV: 1,
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "png",
			Scale:  1,
		},
		Storage: StorageConfig{
			DB: "~/.zero/captures.db",
		},
		Server: ServerConfig{
			HTTPAddr:    ":8080",
			SSHAddr:     ":23235",
			HostKey:     "~/.zero/host_key",
			IdleTimeout: 10 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
