package lbm

import (
	"fmt"

	"lbm2d/internal/lattice"
)

// State owns the distribution field of a w x h lattice together with the
// density and velocity derived from it. Populations are stored row-major with
// the nine directions of a cell contiguous: index (row*w+col)*9 + i.
type State struct {
	w, h    int
	workers int

	f    []float64
	next []float64

	rho []float64
	ux  []float64
	uy  []float64
}

func newState(w, h, workers int) *State {
	n := w * h
	return &State{
		w:       w,
		h:       h,
		workers: workers,
		f:       make([]float64, n*lattice.Q),
		next:    make([]float64, n*lattice.Q),
		rho:     make([]float64, n),
		ux:      make([]float64, n),
		uy:      make([]float64, n),
	}
}

// Distribution exposes the current populations. Callers must not retain the
// slice across steps: streaming swaps the underlying buffers.
func (s *State) Distribution() []float64 { return s.f }

// Density returns the per-cell density, row-major.
func (s *State) Density() []float64 { return s.rho }

// VelocityX returns the per-cell x-velocity, row-major.
func (s *State) VelocityX() []float64 { return s.ux }

// VelocityY returns the per-cell y-velocity, row-major.
func (s *State) VelocityY() []float64 { return s.uy }

// At returns the nine populations of one cell.
func (s *State) At(row, col int) [lattice.Q]float64 {
	var out [lattice.Q]float64
	copy(out[:], s.f[(row*s.w+col)*lattice.Q:])
	return out
}

// Moments returns the density and velocity fields of the current
// distribution. They are refreshed after every mutation of the distribution.
func (s *State) Moments() (rho, ux, uy []float64) {
	return s.rho, s.ux, s.uy
}

// SetDistribution replaces the whole distribution with a copy of f and
// refreshes the moments.
func (s *State) SetDistribution(f []float64) error {
	if len(f) != len(s.f) {
		return fmt.Errorf("lbm: distribution holds %d values, want %d", len(f), len(s.f))
	}
	copy(s.f, f)
	s.refreshMoments()
	return nil
}

// swap makes the streaming destination the current distribution.
func (s *State) swap() {
	s.f, s.next = s.next, s.f
}

// refreshMoments recomputes rho = sum f_i and u = sum c_i f_i / rho for every
// cell. A non-positive density yields non-finite velocity, which the health
// check reports.
func (s *State) refreshMoments() {
	parallelRows(s.h, s.w, s.workers, func(y0, y1 int) {
		computeMoments(s.rho[y0*s.w:y1*s.w], s.ux[y0*s.w:y1*s.w], s.uy[y0*s.w:y1*s.w], s.f[y0*s.w*lattice.Q:y1*s.w*lattice.Q])
	})
}

func computeMoments(rho, ux, uy, f []float64) {
	for c := range rho {
		p := f[c*lattice.Q : (c+1)*lattice.Q : (c+1)*lattice.Q]
		r := p[0] + p[1] + p[2] + p[3] + p[4] + p[5] + p[6] + p[7] + p[8]
		mx := p[1] - p[3] + p[5] - p[6] - p[7] + p[8]
		my := p[2] - p[4] + p[5] + p[6] - p[7] - p[8]
		rho[c] = r
		ux[c] = mx / r
		uy[c] = my / r
	}
}
