// Command lbm-run drives a headless channel-flow simulation: a warm-up phase,
// a measured phase, periodic progress logs and an optional plot report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"lbm2d/internal/core"
	"lbm2d/internal/report"
	"lbm2d/internal/sims/lbm"
)

type options struct {
	configPath string
	overrides  core.KVList
	warmup     int
	steps      int
	progress   time.Duration
	reportDir  string
	sample     int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "INI run configuration (.gcfg, .ini or .cfg)")
	flag.Var(&opts.overrides, "set", "configuration override in key=value form (repeatable)")
	flag.IntVar(&opts.warmup, "warmup", 500, "steps to run before measuring")
	flag.IntVar(&opts.steps, "steps", 60, "measured steps after the warm-up")
	flag.DurationVar(&opts.progress, "progress", 2*time.Second, "minimum interval between progress lines")
	flag.StringVar(&opts.reportDir, "report", "", "write plots into a run directory under this path")
	flag.IntVar(&opts.sample, "sample", 10, "record statistics every N steps for the report")
	flag.Parse()

	runID := uuid.NewString()
	log.SetPrefix("[" + runID[:8] + "] ")
	core.SetLogger(log.Printf)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, runID, opts); err != nil {
		stop()
		if errors.Is(err, lbm.ErrDiverged) {
			log.Printf("run failed: %v", err)
			os.Exit(1)
		}
		log.Fatalf("%v", err)
	}
}

// loadConfig builds the run configuration: defaults scaled by any w/h
// override, or the file given with -config, with the overrides on top.
func loadConfig(opts options) (lbm.Config, error) {
	kv := opts.overrides.Map()
	if opts.configPath == "" {
		return lbm.FromMap(kv)
	}
	cfg, err := lbm.LoadConfigFile(opts.configPath)
	if err != nil {
		return lbm.Config{}, err
	}
	if err := cfg.Apply(kv); err != nil {
		return lbm.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, runID string, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	sim, err := lbm.New(cfg)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	rec := report.NewRecorder(opts.sample)
	var outDir string
	if opts.reportDir != "" {
		outDir = filepath.Join(opts.reportDir, runID)
		if err := rec.Start(outDir); err != nil {
			return err
		}
	}

	progress := core.NewInterval(opts.progress)
	total := opts.warmup + opts.steps
	observe := func(s *lbm.Simulator) {
		rec.Observe(s)
		if progress.Due() {
			sum := s.Summarize()
			log.Printf("step %d/%d: mass=%.6g max|u|=%.4f rho=[%.4f, %.4f]",
				sum.Step, total, sum.Mass, sum.MaxSpeed, sum.MinRho, sum.MaxRho)
		}
	}

	start := time.Now()
	log.Printf("warm-up: %d steps", opts.warmup)
	runErr := sim.Run(ctx, opts.warmup, observe)
	if runErr == nil {
		log.Printf("measuring: %d steps", opts.steps)
		runErr = sim.Run(ctx, opts.steps, observe)
	}
	elapsed := time.Since(start)

	sum := sim.Summarize()
	fmt.Println(formatSummary(sum, elapsed))

	if outDir != "" {
		rec.Stop()
		n, err := rec.GeneratePlots(sim)
		if err != nil {
			log.Printf("report: %v", err)
		} else {
			log.Printf("report: %d plots in %s", n, outDir)
		}
	}
	return runErr
}

func formatSummary(sum lbm.Summary, elapsed time.Duration) string {
	rate := 0.0
	if elapsed > 0 {
		rate = float64(sum.Step) / elapsed.Seconds()
	}
	return fmt.Sprintf("steps=%d mass=%.6g rho=[%.4f, %.4f] mean|u|=%.4f std|u|=%.4f max|u|=%.4f elapsed=%s (%.0f steps/s)",
		sum.Step, sum.Mass, sum.MinRho, sum.MaxRho, sum.MeanSpeed, sum.StdSpeed, sum.MaxSpeed,
		elapsed.Round(time.Millisecond), rate)
}
