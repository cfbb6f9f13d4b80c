//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lbm2d/internal/app"
	"lbm2d/internal/core"
	_ "lbm2d/internal/sims/lbm"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.Build(cfg.Sim, cfg.Set.Map())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("lbm2d - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
