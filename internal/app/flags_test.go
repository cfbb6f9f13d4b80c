package app

import (
	"flag"
	"io"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lbm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	err := fs.Parse([]string{"-sim", "lbm-box", "-scale", "2", "-set", "w=64", "-set", "viscosity = 0.05", "-set", "w=80"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "lbm-box" || cfg.Scale != 2 || cfg.TPS != 60 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	m := cfg.Set.Map()
	if m["w"] != "80" || m["viscosity"] != "0.05" || len(m) != 2 {
		t.Fatalf("Map() = %v", m)
	}
	if got := cfg.Set.String(); got != "w=64,viscosity = 0.05,w=80" {
		t.Fatalf("String() = %q", got)
	}
}
