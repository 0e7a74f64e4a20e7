package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure reported by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds the tunables of a cube field session. Zero-valued fields in a
// YAML file keep their defaults since the file is decoded over Default().
type Config struct {
	MaxCubes         int           `yaml:"max_cubes"`
	MinDistance      float32       `yaml:"min_distance"`
	PlacementRetries int           `yaml:"placement_retries"`
	FrameClamp       time.Duration `yaml:"frame_clamp"`

	FovYDegrees float32 `yaml:"fov_y_degrees"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`

	// Random placement samples x,y in [-SpawnRange, SpawnRange] and z in
	// [-SpawnDepth, SpawnDepth].
	SpawnRange float32 `yaml:"spawn_range"`
	SpawnDepth float32 `yaml:"spawn_depth"`
	// ClickDepth is the world z plane pointer placements land on.
	ClickDepth float32 `yaml:"click_depth"`

	CameraStart [3]float32 `yaml:"camera_start"`
	MoveSpeed   float32    `yaml:"move_speed"`
	TurnSpeed   float32    `yaml:"turn_speed"`

	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	// FeedAddr enables the placement event feed when non-empty, e.g. ":8080".
	FeedAddr string `yaml:"feed_addr,omitempty"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MaxCubes:         512,
		MinDistance:      0.5,
		PlacementRetries: 10,
		FrameClamp:       33 * time.Millisecond,
		FovYDegrees:      60,
		Near:             0.1,
		Far:              100,
		SpawnRange:       10,
		SpawnDepth:       10,
		ClickDepth:       0,
		CameraStart:      [3]float32{0, 0, 20},
		MoveSpeed:        6,
		TurnSpeed:        1.5,
		WindowWidth:      1280,
		WindowHeight:     720,
	}
}

// Load reads a YAML config from path over Default(). A missing file is not an
// error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.MaxCubes <= 0:
		return fmt.Errorf("%w: max_cubes must be positive, got %d", ErrInvalid, c.MaxCubes)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min_distance must not be negative, got %v", ErrInvalid, c.MinDistance)
	case c.PlacementRetries <= 0:
		return fmt.Errorf("%w: placement_retries must be positive, got %d", ErrInvalid, c.PlacementRetries)
	case c.FrameClamp <= 0:
		return fmt.Errorf("%w: frame_clamp must be positive, got %v", ErrInvalid, c.FrameClamp)
	case c.FovYDegrees <= 0 || c.FovYDegrees >= 180:
		return fmt.Errorf("%w: fov_y_degrees must be in (0, 180), got %v", ErrInvalid, c.FovYDegrees)
	case c.Near <= 0 || c.Near >= c.Far:
		return fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalid, c.Near, c.Far)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	}
	return nil
}
