package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zero/internal/export"
)

// EnvPrefix is the prefix of every environment override (ZERO_WIDTH, ...).
const EnvPrefix = "zero"

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.zero/config.yaml -> ./configs/zero.yaml -> embedded default.
// Files are layered over the defaults, so keys they omit keep their default value.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/zero.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path under ~/.zero, or "" without a home directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zero", filename)
}

// envOverrides mirrors the settings that can be set from the environment.
// Zero values mean "not set".
type envOverrides struct {
	Width        int     `envconfig:"WIDTH"`
	Height       int     `envconfig:"HEIGHT"`
	TickRate     int     `envconfig:"TICK_RATE"`
	Background   string  `envconfig:"BACKGROUND"`
	Foreground   string  `envconfig:"FOREGROUND"`
	FOV          float64 `envconfig:"FOV"`
	ExportDir    string  `envconfig:"EXPORT_DIR"`
	ExportFormat string  `envconfig:"EXPORT_FORMAT"`
	ExportScale  int     `envconfig:"EXPORT_SCALE"`
	DB           string  `envconfig:"DB"`
	HTTPAddr     string  `envconfig:"HTTP_ADDR"`
	SSHAddr      string  `envconfig:"SSH_ADDR"`
	HostKey      string  `envconfig:"HOST_KEY"`
	LogLevel     string  `envconfig:"LOG_LEVEL"`
	LogFile      string  `envconfig:"LOG_FILE"`
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	setInt(&cfg.Window.Width, env.Width)
	setInt(&cfg.Window.Height, env.Height)
	setInt(&cfg.Loop.TickRate, env.TickRate)
	setString(&cfg.Palette.Background, env.Background)
	setString(&cfg.Palette.Foreground, env.Foreground)
	if env.FOV != 0 {
		cfg.Camera.FOV = env.FOV
	}
	setString(&cfg.Export.Dir, env.ExportDir)
	setString(&cfg.Export.Format, env.ExportFormat)
	setInt(&cfg.Export.Scale, env.ExportScale)
	setString(&cfg.Storage.DB, env.DB)
	setString(&cfg.Server.HTTPAddr, env.HTTPAddr)
	setString(&cfg.Server.SSHAddr, env.SSHAddr)
	setString(&cfg.Server.HostKey, env.HostKey)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Log.File, env.LogFile)
	return nil
}

// Flags holds command-line overrides. Zero values are ignored.
type Flags struct {
	Width    int
	Height   int
	TickRate int
	Format   string
	Scale    int
	ExportTo string
	DB       string
	HTTPAddr string
	SSHAddr  string
	LogLevel string
}

// Resolve applies command-line overrides on top of the loaded config.
func (c *Config) Resolve(f Flags) {
	setInt(&c.Window.Width, f.Width)
	setInt(&c.Window.Height, f.Height)
	setInt(&c.Loop.TickRate, f.TickRate)
	setString(&c.Export.Format, f.Format)
	setInt(&c.Export.Scale, f.Scale)
	setString(&c.Export.Dir, f.ExportTo)
	setString(&c.Storage.DB, f.DB)
	setString(&c.Server.HTTPAddr, f.HTTPAddr)
	setString(&c.Server.SSHAddr, f.SSHAddr)
	setString(&c.Log.Level, f.LogLevel)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Loop.TickRate)
	}
	if _, err := ParseColor(c.Palette.Background); err != nil {
		return fmt.Errorf("config: palette background: %w", err)
	}
	if _, err := ParseColor(c.Palette.Foreground); err != nil {
		return fmt.Errorf("config: palette foreground: %w", err)
	}
	if !(c.Camera.FOV > 0) {
		return fmt.Errorf("config: camera fov must be positive, got %v", c.Camera.FOV)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Export.Scale < 1 {
		return fmt.Errorf("config: export scale must be at least 1, got %d", c.Export.Scale)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log level: %w", err)
		}
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
