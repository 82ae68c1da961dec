// Package config loads the game configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plus3/spritewalk/internal/components"
	"github.com/plus3/spritewalk/internal/logging"
	"github.com/plus3/spritewalk/internal/spritesheet"
	"github.com/plus3/spritewalk/internal/systems"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig   `yaml:"window"`
	TPS     int            `yaml:"tps"`
	Player  PlayerConfig   `yaml:"player"`
	Sheet   SheetConfig    `yaml:"sheet"`
	Log     logging.Config `yaml:"log"`
	DebugUI bool           `yaml:"debug_ui"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PlayerConfig struct {
	Speed     int                  `yaml:"speed"`
	X         int                  `yaml:"x"`
	Y         int                  `yaml:"y"`
	Direction components.Direction `yaml:"direction"`
}

type SheetConfig struct {
	// Path to a PNG or JPEG sheet; empty uses the built-in sheet
	Path   string      `yaml:"path"`
	Frame  FrameConfig `yaml:"frame"`
	Frames int         `yaml:"frames"`
	Rows   RowsConfig  `yaml:"rows"`
}

type FrameConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RowsConfig is the sheet row, counted in frame heights, of each direction.
type RowsConfig struct {
	Down  int `yaml:"down"`
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
	Up    int `yaml:"up"`
}

func Default() Config {
	layout := spritesheet.DefaultLayout()
	return Config{
		Window: WindowConfig{Title: "spritewalk", Width: 800, Height: 600},
		TPS:    60,
		Player: PlayerConfig{
			Speed:     systems.PlayerMovementSpeed,
			Direction: components.Right,
		},
		Sheet: SheetConfig{
			Frame: FrameConfig{
				X:      layout.Origin.Min.X,
				Y:      layout.Origin.Min.Y,
				Width:  layout.Origin.Dx(),
				Height: layout.Origin.Dy(),
			},
			Frames: layout.FrameCount,
			Rows: RowsConfig{
				Down:  layout.Rows[components.Down],
				Left:  layout.Rows[components.Left],
				Right: layout.Rows[components.Right],
				Up:    layout.Rows[components.Up],
			},
		},
		Log: logging.DefaultConfig(),
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, rejecting unknown keys, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.TPS)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: negative player speed %d", ErrInvalid, c.Player.Speed)
	case !c.Player.Direction.Valid():
		return fmt.Errorf("%w: player direction %d", ErrInvalid, int(c.Player.Direction))
	case c.Sheet.Frame.Width <= 0 || c.Sheet.Frame.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, c.Sheet.Frame.Width, c.Sheet.Frame.Height)
	}

	// Sheet bounds are checked against the loaded image
	unbounded := image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
	if err := c.Layout().Validate(unbounded); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Layout converts the sheet section into a sprite sheet layout.
func (c Config) Layout() spritesheet.Layout {
	f := c.Sheet.Frame
	return spritesheet.Layout{
		Origin:     image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height),
		FrameCount: c.Sheet.Frames,
		Rows: map[components.Direction]int{
			components.Down:  c.Sheet.Rows.Down,
			components.Left:  c.Sheet.Rows.Left,
			components.Right: c.Sheet.Rows.Right,
			components.Up:    c.Sheet.Rows.Up,
		},
	}
}
