package lbm

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/gcfg.v1"
)

const maxConfigFileSize = 64 * 1024

// fileConfig mirrors the INI layout accepted by LoadConfigFile:
//
//	[simulation]
//	width = 300
//	height = 100
//	viscosity = 0.02
//	inlet-speed = 0.1
//
//	[obstacle]
//	x = 75
//	y = 50
//	radius = 12
//
//	[debris]
//	count = 5
//	seed = 42
//
//	[health]
//	max-speed = 0.3
type fileConfig struct {
	Simulation struct {
		Width        int
		Height       int
		Viscosity    float64
		InletSpeed   float64 `gcfg:"inlet-speed"`
		InitialSpeed float64 `gcfg:"initial-speed"`
		Noise        float64
		Periodic     bool
		SeedPolicy   string `gcfg:"seed-policy"`
		NoiseSeed    int64  `gcfg:"noise-seed"`
		Workers      int
	}
	Obstacle struct {
		X      float64
		Y      float64
		Radius float64
	}
	Debris struct {
		Count     int
		Seed      int64
		MinX      int `gcfg:"min-x"`
		MaxX      int `gcfg:"max-x"`
		MinY      int `gcfg:"min-y"`
		MaxY      int `gcfg:"max-y"`
		MinRadius int `gcfg:"min-radius"`
		MaxRadius int `gcfg:"max-radius"`
	}
	// Circle sections add explicit obstacles: [circle "name"].
	Circle map[string]*struct {
		X      float64
		Y      float64
		Radius float64
	}
	Health struct {
		MaxDensity float64 `gcfg:"max-density"`
		MaxSpeed   float64 `gcfg:"max-speed"`
	}
}

// LoadConfigFile reads an INI-style run configuration. The file only needs to
// name the values it changes: the [simulation] width and height are read
// first to size the default obstacle layout, and everything else is layered
// on top of SizedConfig. The result is not validated; New does that.
func LoadConfigFile(path string) (Config, error) {
	clean := filepath.Clean(path)
	switch ext := filepath.Ext(clean); ext {
	case ".gcfg", ".ini", ".cfg":
	default:
		return Config{}, fmt.Errorf("config file must have a .gcfg, .ini or .cfg extension, got %q", ext)
	}
	info, err := os.Stat(clean)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	// The sizing pass also records which speeds the file names: NaN survives
	// only when the key is absent.
	var sizing fileConfig
	def := DefaultConfig()
	sizing.Simulation.Width, sizing.Simulation.Height = def.Width, def.Height
	sizing.Simulation.InletSpeed = math.NaN()
	sizing.Simulation.InitialSpeed = math.NaN()
	if err := gcfg.FatalOnly(gcfg.ReadFileInto(&sizing, clean)); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	inletSet := !math.IsNaN(sizing.Simulation.InletSpeed)
	initialSet := !math.IsNaN(sizing.Simulation.InitialSpeed)

	base := SizedConfig(sizing.Simulation.Width, sizing.Simulation.Height)
	fc := toFile(base)
	if err := gcfg.FatalOnly(gcfg.ReadFileInto(&fc, clean)); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := fromFile(fc, base)
	if inletSet && !initialSet {
		cfg.InitialSpeed = cfg.InletSpeed
	}
	return cfg, nil
}

func toFile(c Config) fileConfig {
	var fc fileConfig
	fc.Simulation.Width = c.Width
	fc.Simulation.Height = c.Height
	fc.Simulation.Viscosity = c.Viscosity
	fc.Simulation.InletSpeed = c.InletSpeed
	fc.Simulation.InitialSpeed = c.InitialSpeed
	fc.Simulation.Noise = c.NoiseAmplitude
	fc.Simulation.Periodic = c.Periodic
	fc.Simulation.SeedPolicy = string(c.SeedPolicy)
	fc.Simulation.NoiseSeed = c.NoiseSeed
	fc.Simulation.Workers = c.Workers
	fc.Obstacle.X = c.Cylinder.X
	fc.Obstacle.Y = c.Cylinder.Y
	fc.Obstacle.Radius = c.Cylinder.R
	fc.Debris.Count = c.Debris.Count
	fc.Debris.Seed = c.Debris.Seed
	fc.Debris.MinX, fc.Debris.MaxX = c.Debris.MinX, c.Debris.MaxX
	fc.Debris.MinY, fc.Debris.MaxY = c.Debris.MinY, c.Debris.MaxY
	fc.Debris.MinRadius, fc.Debris.MaxRadius = c.Debris.MinRadius, c.Debris.MaxRadius
	fc.Health.MaxDensity = c.MaxDensity
	fc.Health.MaxSpeed = c.MaxSpeed
	return fc
}

func fromFile(fc fileConfig, base Config) Config {
	c := base
	c.Width = fc.Simulation.Width
	c.Height = fc.Simulation.Height
	c.Viscosity = fc.Simulation.Viscosity
	c.InletSpeed = fc.Simulation.InletSpeed
	c.InitialSpeed = fc.Simulation.InitialSpeed
	c.NoiseAmplitude = fc.Simulation.Noise
	c.Periodic = fc.Simulation.Periodic
	c.SeedPolicy = SeedPolicy(fc.Simulation.SeedPolicy)
	c.NoiseSeed = fc.Simulation.NoiseSeed
	c.Workers = fc.Simulation.Workers
	c.Cylinder = Circle{X: fc.Obstacle.X, Y: fc.Obstacle.Y, R: fc.Obstacle.Radius}
	c.Debris = DebrisConfig{
		Count:     fc.Debris.Count,
		Seed:      fc.Debris.Seed,
		MinX:      fc.Debris.MinX,
		MaxX:      fc.Debris.MaxX,
		MinY:      fc.Debris.MinY,
		MaxY:      fc.Debris.MaxY,
		MinRadius: fc.Debris.MinRadius,
		MaxRadius: fc.Debris.MaxRadius,
	}
	c.MaxDensity = fc.Health.MaxDensity
	c.MaxSpeed = fc.Health.MaxSpeed

	names := make([]string, 0, len(fc.Circle))
	for name := range fc.Circle {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e := fc.Circle[name]
		if e == nil {
			continue
		}
		c.Extra = append(c.Extra, Circle{X: e.X, Y: e.Y, R: e.Radius})
	}
	return c
}
