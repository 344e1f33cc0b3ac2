// Package config loads the YAML run configuration shared by the CLI commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmaze/kinematics"
	"github.com/katalvlaran/lvmaze/navigator"
	"github.com/katalvlaran/lvmaze/sensor"
)

// ErrInvalid indicates a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Policy names accepted in robot.policy.
const (
	PolicyPlanner = "planner"
	PolicyRandom  = "random"
)

// Config holds all run settings.
type Config struct {
	Maze  MazeConfig  `yaml:"maze"`
	Robot RobotConfig `yaml:"robot"`
	Run   RunConfig   `yaml:"run"`
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
}

// MazeConfig points at the maze file.
type MazeConfig struct {
	Path string `yaml:"path"`
}

// RobotConfig holds agent settings.
type RobotConfig struct {
	SensorRange int    `yaml:"sensor_range"`
	MaxStep     int    `yaml:"max_step"`
	Policy      string `yaml:"policy"` // planner | random
	Seed        int64  `yaml:"seed"`
}

// RunConfig holds harness settings.
type RunConfig struct {
	MoveLimit   int    `yaml:"move_limit"`
	ResetPolicy string `yaml:"reset_policy"` // keep | discard
	Runs        int    `yaml:"runs"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// StoreConfig locates the SQLite run store. An empty path disables it.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, fills defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load for in-memory YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Robot.SensorRange == 0 {
		c.Robot.SensorRange = sensor.MaxRange
	}
	if c.Robot.MaxStep == 0 {
		c.Robot.MaxStep = kinematics.MaxDistance
	}
	if c.Robot.Policy == "" {
		c.Robot.Policy = PolicyPlanner
	}
	if c.Robot.Seed == 0 {
		c.Robot.Seed = 1
	}
	if c.Run.MoveLimit == 0 {
		c.Run.MoveLimit = 1000
	}
	if c.Run.ResetPolicy == "" {
		c.Run.ResetPolicy = navigator.KeepDiscoveries.String()
	}
	if c.Run.Runs == 0 {
		c.Run.Runs = 2
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Robot.SensorRange < 1 || c.Robot.SensorRange > sensor.MaxRange:
		return fmt.Errorf("%w: robot.sensor_range %d not in [1,%d]", ErrInvalid, c.Robot.SensorRange, sensor.MaxRange)
	case c.Robot.MaxStep < 1 || c.Robot.MaxStep > kinematics.MaxDistance:
		return fmt.Errorf("%w: robot.max_step %d not in [1,%d]", ErrInvalid, c.Robot.MaxStep, kinematics.MaxDistance)
	case c.Robot.Policy != PolicyPlanner && c.Robot.Policy != PolicyRandom:
		return fmt.Errorf("%w: robot.policy %q", ErrInvalid, c.Robot.Policy)
	case c.Run.MoveLimit < 1:
		return fmt.Errorf("%w: run.move_limit %d", ErrInvalid, c.Run.MoveLimit)
	case c.Run.Runs < 1:
		return fmt.Errorf("%w: run.runs %d", ErrInvalid, c.Run.Runs)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := navigator.ParseResetPolicy(c.Run.ResetPolicy); err != nil {
		return fmt.Errorf("%w: run.reset_policy: %w", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps the configured level name to slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return lv, nil
}
