// Package config loads the viewer settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/pmapview/internal/logger"
)

// DefaultFile is the config file looked up when --config is not given
const DefaultFile = "pmapview.toml"

type Config struct {
	Window    Window    `toml:"window"`
	Data      Data      `toml:"data"`
	Extractor Extractor `toml:"extractor"`
	Camera    Camera    `toml:"camera"`
	Overlay   Overlay   `toml:"overlay"`
	Keys      Keys      `toml:"keys"`
	Log       Log       `toml:"log"`
	Watch     Watch     `toml:"watch"`

	// Unknown lists keys of the file that matched no setting
	Unknown []string `toml:"-"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	FPS    int    `toml:"fps"`
}

type Data struct {
	Dir       string `toml:"dir"`
	Catalog   string `toml:"catalog"`
	Extension string `toml:"extension"`
}

type Extractor struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Dir     string   `toml:"dir"`
}

type Camera struct {
	InitialScale float64 `toml:"initial_scale"`
}

type Overlay struct {
	Radii    []float64 `toml:"radii"`
	Segments int       `toml:"segments"`
}

type Keys struct {
	Wireframe string `toml:"wireframe"`
	Overlay   string `toml:"overlay"`
	Spawn     string `toml:"spawn"`
}

type Log struct {
	Level     string `toml:"level"`
	Color     bool   `toml:"color"`
	TrackLine bool   `toml:"track_line"`
	File      bool   `toml:"file"`
	Dir       string `toml:"dir"`
}

type Watch struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "Pathing Map Viewer",
			FPS:    60,
		},
		Data: Data{
			Dir:       "PMAPs",
			Catalog:   "mapinfo.csv",
			Extension: ".pmap",
		},
		Extractor: Extractor{
			Command: "pmap",
			Args:    []string{"-e", "{datfile}"},
		},
		Camera: Camera{InitialScale: 0.0001},
		Overlay: Overlay{
			Radii:    []float64{300, 322, 366, 1085, 2500, 5000},
			Segments: 50,
		},
		Keys: Keys{
			Wireframe: "space",
			Overlay:   "c",
			Spawn:     "home",
		},
		Log: Log{
			Level:     "info",
			Color:     true,
			TrackLine: false,
			Dir:       "./log",
		},
		Watch: Watch{
			Enabled:    true,
			DebounceMS: 500,
		},
	}
}

// Load reads a config file on top of the defaults. A missing file is not
// an error.
func Load(filename string) (*Config, error) {
	c := Default()
	if filename == "" {
		return c, nil
	}

	meta, err := toml.DecodeFile(filename, c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}
	for _, key := range meta.Undecoded() {
		c.Unknown = append(c.Unknown, key.String())
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return c, nil
}

// Validate rejects settings the viewer cannot run with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Window.FPS)
	}
	if c.Camera.InitialScale <= 0 {
		return fmt.Errorf("camera initial_scale must be positive, got %v", c.Camera.InitialScale)
	}
	if c.Overlay.Segments < 3 {
		return fmt.Errorf("overlay segments must be at least 3, got %d", c.Overlay.Segments)
	}
	for _, r := range c.Overlay.Radii {
		if r <= 0 {
			return fmt.Errorf("overlay radius must be positive, got %v", r)
		}
	}
	if c.Data.Dir == "" {
		return errors.New("data dir must not be empty")
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	if _, err := logger.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Debounce returns the watch debounce as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// LoggerConfig converts the [log] section for logger.InitLogger
func (c *Config) LoggerConfig(appName string) *logger.Config {
	level, err := logger.ParseLogLevel(c.Log.Level)
	if err != nil {
		level = logger.INFO
	}
	return &logger.Config{
		AppName:      appName,
		Level:        level,
		TrackLine:    c.Log.TrackLine,
		EnableFile:   c.Log.File,
		FileDir:      c.Log.Dir,
		DisableColor: !c.Log.Color,
	}
}
