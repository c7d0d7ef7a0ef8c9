package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings is read from railgate.toml. Every field has a usable default so
// the file is optional.
type Settings struct {
	Level    string         `toml:"level"`
	LogLevel string         `toml:"log_level"`
	Debug    bool           `toml:"debug"`
	Watch    bool           `toml:"watch"`
	Window   WindowSettings `toml:"window"`
	Editor   EditorSettings `toml:"editor"`
}

type WindowSettings struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// EditorSettings controls the in-game edit mode. Key is an ebiten key name
// such as "F2".
type EditorSettings struct {
	Enabled bool   `toml:"enabled"`
	Key     string `toml:"key"`
}

func Default() Settings {
	return Settings{
		Level:    "demo.yaml",
		LogLevel: "info",
		Window: WindowSettings{
			Title:  "railgate",
			Width:  1280,
			Height: 720,
		},
		Editor: EditorSettings{
			Enabled: true,
			Key:     "F2",
		},
	}
}

// Load decodes path over the defaults. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Logger builds the console logger for LogLevel. Debug switches to the
// development encoder.
func (s Settings) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log_level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	if s.Debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
