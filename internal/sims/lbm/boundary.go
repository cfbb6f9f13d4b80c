package lbm

import (
	"lbm2d/internal/lattice"
)

// Boundary enforces the inlet, outlet and obstacle rules on a w x h lattice.
// In periodic mode only the obstacle rule is active.
type Boundary struct {
	w, h int
	open bool

	inletSpeed float64
	inlet      []float64 // equilibrium populations of the inlet column, h*9

	solid    []int     // obstacle cell indices
	snapshot []float64 // post-streaming populations of the obstacle cells
}

// NewBoundary prepares the boundary rules for the given mask.
func NewBoundary(mask []bool, w, h int, inletSpeed float64, open bool) *Boundary {
	b := &Boundary{w: w, h: h, open: open}
	for idx, solid := range mask {
		if solid {
			b.solid = append(b.solid, idx)
		}
	}
	b.snapshot = make([]float64, len(b.solid)*lattice.Q)
	b.inlet = make([]float64, h*lattice.Q)
	b.SetInletSpeed(inletSpeed)
	return b
}

// InletSpeed returns the x-velocity forced at the inlet.
func (b *Boundary) InletSpeed() float64 { return b.inletSpeed }

// SetInletSpeed changes the inflow speed and rebuilds the inlet populations
// as the equilibrium of density 1 and velocity (u0, 0) over the column.
func (b *Boundary) SetInletSpeed(u0 float64) {
	b.inletSpeed = u0
	rho := make([]float64, b.h)
	ux := make([]float64, b.h)
	uy := make([]float64, b.h)
	for y := range rho {
		rho[y] = 1
		ux[y] = u0
	}
	Equilibrium(b.inlet, rho, ux, uy)
}

// OverrideInlet pins the moments of column 0 to density 1 and velocity
// (u0, 0) ahead of the equilibrium computation.
func (b *Boundary) OverrideInlet(rho, ux, uy []float64) {
	if !b.open {
		return
	}
	for y := 0; y < b.h; y++ {
		idx := y * b.w
		rho[idx] = 1
		ux[idx] = b.inletSpeed
		uy[idx] = 0
	}
}

// Apply runs the post-streaming rules on f: inlet equilibrium on column 0,
// zero-gradient outlet on the last column, then bounce-back on obstacle
// cells. Bounce-back reads the populations as they were right after
// streaming and overrides the inlet and outlet on solid cells.
func (b *Boundary) Apply(f []float64) {
	b.capture(f)
	if b.open {
		b.applyInlet(f)
		b.applyOutlet(f)
	}
	b.bounceBack(f)
}

func (b *Boundary) capture(f []float64) {
	const q = lattice.Q
	for k, idx := range b.solid {
		copy(b.snapshot[k*q:(k+1)*q], f[idx*q:(idx+1)*q])
	}
}

func (b *Boundary) applyInlet(f []float64) {
	const q = lattice.Q
	for y := 0; y < b.h; y++ {
		idx := y * b.w
		copy(f[idx*q:(idx+1)*q], b.inlet[y*q:(y+1)*q])
	}
}

func (b *Boundary) applyOutlet(f []float64) {
	const q = lattice.Q
	for y := 0; y < b.h; y++ {
		last := y*b.w + b.w - 1
		copy(f[last*q:(last+1)*q], f[(last-1)*q:last*q])
	}
}

func (b *Boundary) bounceBack(f []float64) {
	const q = lattice.Q
	for k, idx := range b.solid {
		snap := b.snapshot[k*q : (k+1)*q]
		out := f[idx*q : (idx+1)*q]
		for i := 0; i < q; i++ {
			out[i] = snap[lattice.Opposite[i]]
		}
	}
}
