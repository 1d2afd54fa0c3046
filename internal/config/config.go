// Package config loads duel settings from YAML with optional .env overrides.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Tank-Duel/internal/duel"
)

// Environment keys read by LoadEnv and Apply.
const (
	EnvConfigPath = "TANKS_CONFIG"
	EnvAudio      = "TANKS_AUDIO"
	EnvTPS        = "TANKS_TPS"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid config")

// SimConfig holds the simulation constants.
type SimConfig struct {
	TicksPerSecond  int     `yaml:"ticks_per_second"`
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	TerrainStep     float64 `yaml:"terrain_step"`
	Gravity         float64 `yaml:"gravity"`
	Wind            float64 `yaml:"wind"`
	GravityAccel    float64 `yaml:"gravity_accel"`
	WindAccel       float64 `yaml:"wind_accel"`
	MaxLaunchSpeed  float64 `yaml:"max_launch_speed"`
	SplashRadius    float64 `yaml:"splash_radius"`
	SplashMaxDamage int     `yaml:"splash_max_damage"`
	DirectHitDamage int     `yaml:"direct_hit_damage"`
	ResolveDelayMS  int     `yaml:"resolve_delay_ms"`
	ExplosionMS     int     `yaml:"explosion_ms"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	MovesPerTurn    int     `yaml:"moves_per_turn"`
	MoveStep        float64 `yaml:"move_step"`
}

// WindowConfig controls the ebiten window.
type WindowConfig struct {
	Scale float64 `yaml:"scale"`
	Title string  `yaml:"title"`
	Scene string  `yaml:"scene"`
}

// AudioConfig controls the sound effects.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // beep volume exponent, 0 is unity gain
}

// LogConfig bounds the interactive match log.
type LogConfig struct {
	Capacity int  `yaml:"capacity"`
	Verbose  bool `yaml:"verbose"`
}

// Config is the full settings file.
type Config struct {
	Sim    SimConfig    `yaml:"sim"`
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns settings equal to the stock duel constants.
func Default() Config {
	t := duel.DefaultTuning()
	return Config{
		Sim: SimConfig{
			TicksPerSecond:  t.TicksPerSecond,
			Width:           t.Width,
			Height:          t.Height,
			TerrainStep:     t.TerrainStep,
			Gravity:         t.Gravity,
			Wind:            t.Wind,
			GravityAccel:    t.GravityAccel,
			WindAccel:       t.WindAccel,
			MaxLaunchSpeed:  t.MaxSpeed,
			SplashRadius:    t.SplashRadius,
			SplashMaxDamage: t.SplashMaxDamage,
			DirectHitDamage: t.DirectHitDamage,
			ResolveDelayMS:  int(t.ResolveDelay / time.Millisecond),
			ExplosionMS:     int(t.ExplosionDuration / time.Millisecond),
			ExplosionRadius: t.ExplosionRadius,
			MovesPerTurn:    t.MovesPerTurn,
			MoveStep:        t.MoveStep,
		},
		Window: WindowConfig{Scale: 1, Title: "Tank Duel", Scene: "mountains"},
		Audio:  AudioConfig{Enabled: true},
		Log:    LogConfig{Capacity: 200},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Parse(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping any field the document omits, then
// validates the result.
func Parse(b []byte, cfg *Config) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	s := c.Sim
	lane := duel.DefaultTuning()
	switch {
	case s.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second must be positive, got %d", ErrInvalid, s.TicksPerSecond)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: width and height must be positive, got %gx%g", ErrInvalid, s.Width, s.Height)
	case s.TerrainStep <= 0:
		return fmt.Errorf("%w: terrain_step must be positive, got %g", ErrInvalid, s.TerrainStep)
	case math.Floor(s.Width/s.TerrainStep)*s.TerrainStep < lane.MaxX:
		// the last terrain sample must reach the far end of the tank lane
		return fmt.Errorf("%w: width %g (step %g) does not cover the tank lane %g..%g", ErrInvalid, s.Width, s.TerrainStep, lane.MinX, lane.MaxX)
	case s.Gravity*s.GravityAccel <= 0:
		return fmt.Errorf("%w: gravity*gravity_accel must be positive, got %g*%g", ErrInvalid, s.Gravity, s.GravityAccel)
	case s.ResolveDelayMS < 0 || s.ExplosionMS < 0:
		return fmt.Errorf("%w: delays must not be negative", ErrInvalid)
	case s.SplashMaxDamage < 0 || s.DirectHitDamage < 0:
		return fmt.Errorf("%w: damage must not be negative", ErrInvalid)
	case s.SplashRadius < 0 || s.ExplosionRadius < 0:
		return fmt.Errorf("%w: radii must not be negative", ErrInvalid)
	case s.MovesPerTurn < 0 || s.MoveStep < 0:
		return fmt.Errorf("%w: movement must not be negative", ErrInvalid)
	case c.Window.Scale <= 0:
		return fmt.Errorf("%w: window scale must be positive, got %g", ErrInvalid, c.Window.Scale)
	case c.Log.Capacity < 0:
		return fmt.Errorf("%w: log capacity must not be negative", ErrInvalid)
	}
	return nil
}

// Tuning converts the sim section into the core's constants. Fields the
// file cannot set keep their stock values.
func (c Config) Tuning() duel.Tuning {
	t := duel.DefaultTuning()
	s := c.Sim
	t.TicksPerSecond = s.TicksPerSecond
	t.Width = s.Width
	t.Height = s.Height
	t.TerrainStep = s.TerrainStep
	t.Gravity = s.Gravity
	t.Wind = s.Wind
	t.GravityAccel = s.GravityAccel
	t.WindAccel = s.WindAccel
	t.MaxSpeed = s.MaxLaunchSpeed
	t.SplashRadius = s.SplashRadius
	t.SplashMaxDamage = s.SplashMaxDamage
	t.DirectHitDamage = s.DirectHitDamage
	t.ResolveDelay = time.Duration(s.ResolveDelayMS) * time.Millisecond
	t.ExplosionDuration = time.Duration(s.ExplosionMS) * time.Millisecond
	t.ExplosionRadius = s.ExplosionRadius
	t.MovesPerTurn = s.MovesPerTurn
	t.MoveStep = s.MoveStep
	return t
}

// LoadEnv loads a .env file into the process environment if one exists.
// Variables already set are left alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// FromEnv loads the YAML file named by TANKS_CONFIG (or defaults) and applies
// the remaining environment overrides.
func FromEnv() (Config, error) {
	cfg, err := Load(os.Getenv(EnvConfigPath))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv applies TANKS_AUDIO and TANKS_TPS overrides using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	switch strings.ToLower(strings.TrimSpace(getenv(EnvAudio))) {
	case "off", "0", "false", "no":
		c.Audio.Enabled = false
	case "on", "1", "true", "yes":
		c.Audio.Enabled = true
	}
	if v := strings.TrimSpace(getenv(EnvTPS)); v != "" {
		tps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvTPS, v, err)
		}
		c.Sim.TicksPerSecond = tps
	}
	return c.Validate()
}
