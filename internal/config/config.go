// Package config provides YAML-based configuration loading with
// environment and command-line overrides.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
)

// Config is the complete application configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Loop    LoopConfig    `yaml:"loop"`
	Palette PaletteConfig `yaml:"palette"`
	Camera  CameraConfig  `yaml:"camera"`
	Export  ExportConfig  `yaml:"export"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// WindowConfig defines the title and frame size used by headless hosts.
// Terminal hosts size the frame from the terminal instead.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoopConfig defines the frame loop timing.
type LoopConfig struct {
	TickRate int `yaml:"tick_rate"` // Updates per second
}

// PaletteConfig holds hex colors: #rgb, #rrggbb or #rrggbbaa.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// CameraConfig is the initial camera position and zoom.
type CameraConfig struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	FOV float64 `yaml:"fov"`
}

// ExportConfig controls capture and render output.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png, webp, tga or bmp
	Scale  int    `yaml:"scale"`  // Integer nearest-neighbour upscale
}

// StorageConfig locates the capture database.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// ServerConfig contains the network host settings.
type ServerConfig struct {
	HTTPAddr    string        `yaml:"http_addr"`
	SSHAddr     string        `yaml:"ssh_addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty means stderr
}

// Runtime builds the scene runtime config for a w×h frame.
func (c Config) Runtime(w, h int) (core.RuntimeConfig, error) {
	bg, err := ParseColor(c.Palette.Background)
	if err != nil {
		return core.RuntimeConfig{}, fmt.Errorf("palette background: %w", err)
	}
	fg, err := ParseColor(c.Palette.Foreground)
	if err != nil {
		return core.RuntimeConfig{}, fmt.Errorf("palette foreground: %w", err)
	}

	rc := core.DefaultConfig().WithSize(w, h)
	rc.TickRate = c.Loop.TickRate
	rc.Palette = core.Palette{Background: bg, Foreground: fg}
	rc.Camera.Position = raster.PtF(c.Camera.X, c.Camera.Y)
	rc.Camera.FOV = c.Camera.FOV
	return rc, nil
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa hex colors. Colors
// without an alpha byte are opaque.
func ParseColor(s string) (raster.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	switch len(s) {
	case 4, 7, 9:
	default:
		return raster.Color{}, fmt.Errorf("invalid color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return raster.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return raster.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return raster.FromColor(c).WithAlpha(alpha), nil
}
