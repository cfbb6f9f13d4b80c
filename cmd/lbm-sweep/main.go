// Command lbm-sweep runs the channel flow over a grid of viscosities and inlet
// speeds in parallel and reports which combinations stay stable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"lbm2d/internal/core"
	"lbm2d/internal/sims/lbm"
)

type paramSet struct {
	viscosity  float64
	inletSpeed float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("nu=%.4g u0=%.4g", p.viscosity, p.inletSpeed)
}

type scenarioResult struct {
	params    paramSet
	reynolds  float64
	stable    bool
	steps     int
	maxSpeed  float64
	massDrift float64
	failure   string
}

func main() {
	steps := flag.Int("steps", 2000, "steps to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "scenarios run concurrently")
	viscosities := flag.String("viscosity", "0.005,0.01,0.02,0.05", "comma-separated viscosities")
	speeds := flag.String("speed", "0.05,0.1,0.15,0.2", "comma-separated inlet speeds")
	width := flag.Int("w", 150, "grid width")
	height := flag.Int("h", 50, "grid height")
	flag.Parse()

	nus, err := parseFloats(*viscosities)
	if err != nil {
		log.Fatalf("-viscosity: %v", err)
	}
	us, err := parseFloats(*speeds)
	if err != nil {
		log.Fatalf("-speed: %v", err)
	}
	core.SetLogger(nil)

	base := lbm.SizedConfig(*width, *height)
	base.Workers = 1
	sets := expand(nus, us)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps, %dx%d)\n", len(sets), *workers, *steps, *width, *height)
	start := time.Now()
	results, err := sweep(ctx, base, sets, *steps, *workers)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	rank(results)
	printResults(os.Stdout, results)
	fmt.Printf("\nElapsed %s\n", time.Since(start).Round(time.Millisecond))
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("empty list")
	}
	return out, nil
}

func expand(viscosities, speeds []float64) []paramSet {
	sets := make([]paramSet, 0, len(viscosities)*len(speeds))
	for _, nu := range viscosities {
		for _, u := range speeds {
			sets = append(sets, paramSet{viscosity: nu, inletSpeed: u})
		}
	}
	return sets
}

// sweep runs every parameter set with at most workers scenarios in flight.
// Unstable scenarios are results, not errors; only cancellation aborts.
func sweep(ctx context.Context, base lbm.Config, sets []paramSet, steps, workers int) ([]scenarioResult, error) {
	results := make([]scenarioResult, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, params := range sets {
		g.Go(func() error {
			res, err := runScenario(ctx, base, params, steps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runScenario(ctx context.Context, base lbm.Config, params paramSet, steps int) (scenarioResult, error) {
	cfg := base
	cfg.Viscosity = params.viscosity
	cfg.InletSpeed = params.inletSpeed
	cfg.InitialSpeed = params.inletSpeed

	res := scenarioResult{params: params, reynolds: reynolds(cfg)}
	sim, err := lbm.New(cfg)
	if err != nil {
		res.failure = err.Error()
		return res, nil
	}

	initial := lbm.TotalMass(sim.Density())
	var peak float64
	runErr := sim.Run(ctx, steps, func(s *lbm.Simulator) {
		ux, uy := s.Velocity()
		if v, _ := lbm.MaxFluidSpeed(ux, uy, s.ObstacleMask()); v > peak {
			peak = v
		}
	})
	if runErr != nil && !errors.Is(runErr, lbm.ErrDiverged) {
		return res, runErr
	}

	res.steps = sim.StepIndex()
	res.maxSpeed = peak
	res.stable = runErr == nil
	if runErr != nil {
		res.failure = runErr.Error()
	} else if initial > 0 {
		res.massDrift = (lbm.TotalMass(sim.Density()) - initial) / initial
	}
	return res, nil
}

// reynolds is u0 * D / nu with the main cylinder's diameter as length scale.
func reynolds(cfg lbm.Config) float64 {
	if cfg.Viscosity <= 0 {
		return 0
	}
	return cfg.InletSpeed * 2 * cfg.Cylinder.R / cfg.Viscosity
}

// rank orders stable scenarios first, then by Reynolds number descending.
func rank(results []scenarioResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].stable != results[j].stable {
			return results[i].stable
		}
		return results[i].reynolds > results[j].reynolds
	})
}

func printResults(w io.Writer, results []scenarioResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARAMS\tRe\tSTATUS\tSTEPS\tMAX|u|\tMASS DRIFT\tDETAIL")
	for _, r := range results {
		status := "stable"
		if !r.stable {
			status = "diverged"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%s\t%d\t%.4f\t%+.2e\t%s\n",
			r.params, r.reynolds, status, r.steps, r.maxSpeed, r.massDrift, r.failure)
	}
	tw.Flush()
}
