package app

import (
	"flag"

	"lbm2d/internal/core"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Set      core.KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "lbm", Scale: 4, TPS: 60, Seed: 1, HUDWidth: 220}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels, 0 hides it")
	fs.Var(&c.Set, "set", "simulation setting in key=value form (repeatable)")
}
