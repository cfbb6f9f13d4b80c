package lbm

import (
	"errors"
	"math"
	"sort"
	"strconv"
)

// SeedPolicy selects how the initial velocity noise is seeded.
type SeedPolicy string

const (
	// SeedFixed seeds the noise from Config.NoiseSeed; runs repeat exactly.
	SeedFixed SeedPolicy = "fixed"
	// SeedTime seeds the noise from the wall clock on every initialisation.
	SeedTime SeedPolicy = "time"
)

// DefaultMaxSpeed is the default health bound on fluid speed, in lattice
// units per step.
const DefaultMaxSpeed = 1.0 / 3.0

// DebrisConfig places Count small circles pseudo-randomly. Placement always
// uses Seed so the geometry is reproducible regardless of SeedPolicy.
type DebrisConfig struct {
	Count int
	Seed  int64

	// Centres are drawn from [MinX, MaxX) x [MinY, MaxY), radii from
	// [MinRadius, MaxRadius).
	MinX, MaxX           int
	MinY, MaxY           int
	MinRadius, MaxRadius int
}

// Config controls a simulation run. Build one with DefaultConfig or
// SizedConfig and adjust fields; New validates it.
type Config struct {
	Width  int
	Height int

	// Viscosity is the kinematic viscosity in lattice units; it fixes the
	// relaxation time through tau = 3*nu + 0.5.
	Viscosity float64
	// InletSpeed is the x-velocity forced on column 0 every step.
	InletSpeed float64
	// InitialSpeed is the uniform x-velocity of the initial state.
	InitialSpeed float64
	// NoiseAmplitude scales the uniform [0, 1) noise added to both velocity
	// components of the initial state.
	NoiseAmplitude float64

	// Periodic disables the inlet and outlet, leaving a fully periodic box.
	Periodic bool

	// Cylinder is the main obstacle; a zero radius disables it.
	Cylinder Circle
	Debris   DebrisConfig
	Extra    []Circle
	// Solid optionally marks additional solid cells.
	Solid func(col, row int) bool

	SeedPolicy SeedPolicy
	NoiseSeed  int64

	// Health check bounds.
	MaxDensity float64
	MaxSpeed   float64

	// Workers caps the goroutines used per kernel; zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the standard 300x100 channel configuration.
func DefaultConfig() Config {
	return SizedConfig(300, 100)
}

// SizedConfig returns the default configuration with the obstacle layout
// scaled to a w x h grid: a cylinder at (w/4, h/2) of radius h/8 and five
// debris circles downstream of it. Debris centres keep a margin of up to 20
// columns from the outlet and 10 rows from the top and bottom, shrunk on
// small grids so the placement ranges never empty out.
func SizedConfig(w, h int) Config {
	xMargin := min(20, w/3)
	yMargin := min(10, h/4)
	return Config{
		Width:          w,
		Height:         h,
		Viscosity:      0.02,
		InletSpeed:     0.1,
		InitialSpeed:   0.1,
		NoiseAmplitude: 0.01,
		Cylinder: Circle{
			X: float64(w / 4),
			Y: float64(h / 2),
			R: float64(h / 8),
		},
		Debris: DebrisConfig{
			Count:     5,
			Seed:      42,
			MinX:      w / 3,
			MaxX:      w - xMargin,
			MinY:      yMargin,
			MaxY:      h - yMargin,
			MinRadius: 2,
			MaxRadius: 6,
		},
		SeedPolicy: SeedFixed,
		NoiseSeed:  1,
		MaxDensity: 4,
		MaxSpeed:   DefaultMaxSpeed,
	}
}

// Relaxation converts a kinematic viscosity into the BGK relaxation time tau
// and frequency omega = 1/tau.
func Relaxation(viscosity float64) (tau, omega float64) {
	tau = 3*viscosity + 0.5
	return tau, 1 / tau
}

// Validate checks every field that can be judged without building the
// obstacle mask. All problems are reported, joined.
func (c Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, configErrorf(field, format, args...))
	}

	if c.Width <= 0 {
		add("width", "must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		add("height", "must be positive, got %d", c.Height)
	}
	if !c.Periodic && c.Width > 0 && c.Width < 2 {
		add("width", "open boundaries need at least 2 columns, got %d", c.Width)
	}

	switch {
	case !finite(c.Viscosity):
		add("viscosity", "must be finite, got %g", c.Viscosity)
	case c.Viscosity <= 0:
		add("viscosity", "must be positive, got %g", c.Viscosity)
	default:
		if tau, _ := Relaxation(c.Viscosity); tau <= 0.5 {
			add("viscosity", "relaxation time %g must exceed 0.5", tau)
		}
	}

	if !finite(c.MaxSpeed) || c.MaxSpeed <= 0 {
		add("max_speed", "must be positive and finite, got %g", c.MaxSpeed)
	}
	if !finite(c.MaxDensity) || c.MaxDensity <= 1 {
		add("max_density", "must be finite and above 1, got %g", c.MaxDensity)
	}
	if !finite(c.InletSpeed) {
		add("inlet_speed", "must be finite, got %g", c.InletSpeed)
	} else if !c.Periodic && c.MaxSpeed > 0 && math.Abs(c.InletSpeed) >= c.MaxSpeed {
		add("inlet_speed", "|%g| must stay below max_speed %g", c.InletSpeed, c.MaxSpeed)
	}
	if !finite(c.InitialSpeed) {
		add("initial_speed", "must be finite, got %g", c.InitialSpeed)
	}
	if !finite(c.NoiseAmplitude) || c.NoiseAmplitude < 0 {
		add("noise", "must be finite and non-negative, got %g", c.NoiseAmplitude)
	}

	if !finite(c.Cylinder.R) || c.Cylinder.R < 0 {
		add("cylinder_r", "must be finite and non-negative, got %g", c.Cylinder.R)
	}
	if !finite(c.Cylinder.X) || !finite(c.Cylinder.Y) {
		add("cylinder", "centre must be finite, got (%g, %g)", c.Cylinder.X, c.Cylinder.Y)
	}
	for i, e := range c.Extra {
		if !finite(e.X) || !finite(e.Y) || !finite(e.R) || e.R < 0 {
			add("extra", "circle %d is invalid: %+v", i, e)
		}
	}
	if c.Debris.Count < 0 {
		add("debris", "count must be non-negative, got %d", c.Debris.Count)
	}
	if c.Debris.MinRadius < 0 || c.Debris.MaxRadius < c.Debris.MinRadius {
		add("debris_radius", "range [%d, %d) is invalid", c.Debris.MinRadius, c.Debris.MaxRadius)
	}
	if c.Debris.Count > 0 {
		if c.Debris.MaxX <= c.Debris.MinX {
			add("debris_x", "placement range [%d, %d) is empty", c.Debris.MinX, c.Debris.MaxX)
		}
		if c.Debris.MaxY <= c.Debris.MinY {
			add("debris_y", "placement range [%d, %d) is empty", c.Debris.MinY, c.Debris.MaxY)
		}
	}

	switch c.SeedPolicy {
	case "", SeedFixed, SeedTime:
	default:
		add("seed_policy", "must be %q or %q, got %q", SeedFixed, SeedTime, c.SeedPolicy)
	}
	if c.Workers < 0 {
		add("workers", "must be non-negative, got %d", c.Workers)
	}

	return errors.Join(errs...)
}

// FromMap builds a configuration from flag-style key/value pairs. The grid
// size keys w and h are applied first so the default obstacle layout scales
// with them; the remaining keys override individual fields. Unknown keys and
// unparsable values are errors. Range checks are left to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	w, h := 300, 100
	var errs []error
	if v, ok := cfg["w"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, configErrorf("w", "%v", err))
		} else {
			w = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, configErrorf("h", "%v", err))
		} else {
			h = parsed
		}
	}
	c := SizedConfig(w, h)

	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	_, initialSet := cfg["initial_speed"]
	for _, key := range keys {
		if err := c.set(key, cfg[key]); err != nil {
			errs = append(errs, err)
		}
	}
	if _, ok := cfg["inlet_speed"]; ok && !initialSet {
		c.InitialSpeed = c.InletSpeed
	}
	return c, errors.Join(errs...)
}

// Apply overrides individual fields of c from key/value pairs using the keys
// FromMap accepts. Unlike FromMap, w and h only change the grid dimensions and
// leave the obstacle layout where it is.
func (c *Config) Apply(kv map[string]string) error {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		var err error
		switch key {
		case "w":
			c.Width, err = strconv.Atoi(kv[key])
		case "h":
			c.Height, err = strconv.Atoi(kv[key])
		default:
			if err := c.set(key, kv[key]); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err != nil {
			errs = append(errs, configErrorf(key, "%v", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "w", "h":
		return nil
	case "viscosity":
		c.Viscosity, err = strconv.ParseFloat(value, 64)
	case "inlet_speed":
		c.InletSpeed, err = strconv.ParseFloat(value, 64)
	case "initial_speed":
		c.InitialSpeed, err = strconv.ParseFloat(value, 64)
	case "noise":
		c.NoiseAmplitude, err = strconv.ParseFloat(value, 64)
	case "periodic":
		c.Periodic, err = strconv.ParseBool(value)
	case "cylinder_x":
		c.Cylinder.X, err = strconv.ParseFloat(value, 64)
	case "cylinder_y":
		c.Cylinder.Y, err = strconv.ParseFloat(value, 64)
	case "cylinder_r":
		c.Cylinder.R, err = strconv.ParseFloat(value, 64)
	case "debris":
		c.Debris.Count, err = strconv.Atoi(value)
	case "debris_seed":
		c.Debris.Seed, err = strconv.ParseInt(value, 10, 64)
	case "debris_radius_min":
		c.Debris.MinRadius, err = strconv.Atoi(value)
	case "debris_radius_max":
		c.Debris.MaxRadius, err = strconv.Atoi(value)
	case "seed_policy":
		c.SeedPolicy = SeedPolicy(value)
	case "noise_seed":
		c.NoiseSeed, err = strconv.ParseInt(value, 10, 64)
	case "max_density":
		c.MaxDensity, err = strconv.ParseFloat(value, 64)
	case "max_speed":
		c.MaxSpeed, err = strconv.ParseFloat(value, 64)
	case "workers":
		c.Workers, err = strconv.Atoi(value)
	default:
		return configErrorf(key, "unknown key")
	}
	if err != nil {
		return configErrorf(key, "%v", err)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
