package lbm

import (
	"context"
	"math"

	"lbm2d/internal/core"
	"lbm2d/internal/lattice"
)

// Status is the lifecycle state of a Simulator.
type Status int

const (
	// Running accepts further steps.
	Running Status = iota
	// Diverged is terminal: the last health check failed.
	Diverged
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Simulator advances a D2Q9 BGK lattice one step at a time. It is driven by a
// single goroutine; Step must not be called concurrently.
type Simulator struct {
	cfg   Config
	w, h  int
	tau   float64
	omega float64

	mask  []bool
	solid int
	state *State
	feq   []float64
	bound *Boundary

	step   int
	status Status
	err    error
}

// New validates cfg, builds the obstacle mask and allocates the lattice in its
// initial near-equilibrium state. Configuration problems are returned as
// errors wrapping ErrConfiguration before any lattice memory is allocated.
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.SeedPolicy == "" {
		cfg.SeedPolicy = SeedFixed
	}
	mask := BuildMask(cfg)
	if !cfg.Periodic {
		if err := checkOpenColumns(mask, cfg.Width, cfg.Height); err != nil {
			return nil, err
		}
	}

	tau, omega := Relaxation(cfg.Viscosity)
	s := &Simulator{
		cfg:   cfg,
		w:     cfg.Width,
		h:     cfg.Height,
		tau:   tau,
		omega: omega,
		mask:  mask,
		solid: countSolid(mask),
		state: newState(cfg.Width, cfg.Height, cfg.Workers),
		feq:   make([]float64, cfg.Width*cfg.Height*lattice.Q),
		bound: NewBoundary(mask, cfg.Width, cfg.Height, cfg.InletSpeed, !cfg.Periodic),
	}
	s.Reset(cfg.NoiseSeed)

	core.Logf("lbm: %dx%d grid, nu=%g tau=%.4f omega=%.4f, inlet=%g, %d solid cells, periodic=%v",
		s.w, s.h, cfg.Viscosity, tau, omega, cfg.InletSpeed, s.solid, cfg.Periodic)
	return s, nil
}

// Reset reinitialises the lattice to equilibrium at density 1 and the
// configured initial velocity plus noise, and rewinds the step counter. Under
// SeedFixed the noise comes from seed; under SeedTime from the clock. The
// geometry is not rebuilt.
func (s *Simulator) Reset(seed int64) {
	if s.cfg.SeedPolicy == SeedTime {
		seed = core.ClockSeed()
	}
	rho, ux, uy := s.state.rho, s.state.ux, s.state.uy
	for i := range rho {
		rho[i] = 1
	}
	if s.cfg.NoiseAmplitude > 0 {
		rng := core.NewRNG(seed)
		rng.FillUniform(ux, s.cfg.NoiseAmplitude)
		rng.FillUniform(uy, s.cfg.NoiseAmplitude)
	} else {
		clear(ux)
		clear(uy)
	}
	for i := range ux {
		ux[i] += s.cfg.InitialSpeed
	}
	equilibriumGrid(s.state.f, rho, ux, uy, s.w, s.h, s.cfg.Workers)
	s.state.refreshMoments()

	s.step = 0
	s.status = Running
	s.err = nil
}

// Step advances the lattice by one time step: moments, inlet override,
// equilibrium, collision, streaming, boundary rules, then a health check.
// Once diverged, Step leaves the state untouched and returns the same error.
func (s *Simulator) Step() error {
	if s.status == Diverged {
		return s.err
	}
	st := s.state
	rho, ux, uy := st.Moments()
	s.bound.OverrideInlet(rho, ux, uy)
	equilibriumGrid(s.feq, rho, ux, uy, s.w, s.h, s.cfg.Workers)
	collideGrid(st.f, s.feq, s.omega, s.mask, s.w, s.h, s.cfg.Workers)
	streamGrid(st.next, st.f, s.w, s.h, s.cfg.Workers)
	st.swap()
	s.bound.Apply(st.f)
	st.refreshMoments()
	s.step++

	if err := s.checkHealth(); err != nil {
		s.status = Diverged
		s.err = err
		core.Logf("lbm: diverged: %v", err)
		return err
	}
	return nil
}

// Run calls Step up to n times, stopping early on divergence or when ctx is
// done. Cancellation is only observed between steps. observe, when non-nil,
// runs after every completed step.
func (s *Simulator) Run(ctx context.Context, n int, observe func(*Simulator)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
		if observe != nil {
			observe(s)
		}
	}
	return nil
}

// checkHealth scans the fresh moments. Density is checked everywhere; speed
// only on fluid cells, since solid cells hold reflected populations.
func (s *Simulator) checkHealth() error {
	rho, ux, uy := s.state.Moments()
	maxSpeedSq := s.cfg.MaxSpeed * s.cfg.MaxSpeed
	for idx, r := range rho {
		var kind DivergenceKind
		var value, limit float64
		switch {
		case math.IsNaN(r) || math.IsInf(r, 0):
			kind, value = DensityNonFinite, r
		case r <= 0:
			kind, value = DensityNonPositive, r
		case r > s.cfg.MaxDensity:
			kind, value, limit = DensityTooHigh, r, s.cfg.MaxDensity
		case !finite(ux[idx]) || !finite(uy[idx]):
			kind, value = VelocityNonFinite, math.Hypot(ux[idx], uy[idx])
		case !s.mask[idx] && ux[idx]*ux[idx]+uy[idx]*uy[idx] > maxSpeedSq:
			kind, value, limit = SpeedTooHigh, math.Hypot(ux[idx], uy[idx]), s.cfg.MaxSpeed
		default:
			continue
		}
		col, row := s.Size().Coords(idx)
		return &DivergenceError{
			Step:  s.step,
			Row:   row,
			Col:   col,
			Kind:  kind,
			Value: value,
			Limit: limit,
		}
	}
	return nil
}

// Density returns the per-cell density, row-major.
func (s *Simulator) Density() []float64 { return s.state.rho }

// Velocity returns the per-cell velocity components, row-major.
func (s *Simulator) Velocity() (ux, uy []float64) { return s.state.ux, s.state.uy }

// ObstacleMask returns the solid cells, row-major. It never changes.
func (s *Simulator) ObstacleMask() []bool { return s.mask }

// StepIndex returns the number of completed steps since the last reset.
func (s *Simulator) StepIndex() int { return s.step }

// Status reports whether the simulator is still running.
func (s *Simulator) Status() Status { return s.status }

// Err returns the divergence error once the simulator has diverged.
func (s *Simulator) Err() error { return s.err }

// Size returns the grid dimensions.
func (s *Simulator) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Relaxation returns the relaxation time and frequency in use.
func (s *Simulator) Relaxation() (tau, omega float64) { return s.tau, s.omega }

// Config returns the configuration the simulator was built from.
func (s *Simulator) Config() Config { return s.cfg }

// SolidCells returns the number of obstacle cells.
func (s *Simulator) SolidCells() int { return s.solid }

// State exposes the lattice state, mainly for diagnostics and tests.
func (s *Simulator) State() *State { return s.state }

// InletSpeed returns the current inflow speed.
func (s *Simulator) InletSpeed() float64 { return s.bound.InletSpeed() }

// SetInletSpeed changes the inflow speed for subsequent steps. Values at or
// above the speed bound are rejected.
func (s *Simulator) SetInletSpeed(u0 float64) error {
	if !finite(u0) || math.Abs(u0) >= s.cfg.MaxSpeed {
		return configErrorf("inlet_speed", "|%g| must stay below max_speed %g", u0, s.cfg.MaxSpeed)
	}
	s.cfg.InletSpeed = u0
	s.bound.SetInletSpeed(u0)
	return nil
}
