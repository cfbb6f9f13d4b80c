package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lbm2d/internal/lattice"
)

func cellOf(f []float64, w, row, col int) []float64 {
	return f[(row*w+col)*lattice.Q : (row*w+col+1)*lattice.Q]
}

func inletEquilibrium(u0 float64) []float64 {
	feq := make([]float64, lattice.Q)
	EquilibriumCell(feq, 1, u0, 0)
	return feq
}

func TestBoundaryApplyOpenChannel(t *testing.T) {
	const w, h, u0 = 4, 3, 0.07
	mask := make([]bool, w*h)
	mask[1*w+2] = true

	f := randomPopulations(w*h, 31)
	before := append([]float64(nil), f...)
	NewBoundary(mask, w, h, u0, true).Apply(f)

	for row := 0; row < h; row++ {
		assert.InDeltaSlice(t, inletEquilibrium(u0), cellOf(f, w, row, 0), 1e-15, "inlet row %d", row)
		// The outlet copies the neighbour as streamed, before bounce-back.
		assert.Equal(t, cellOf(before, w, row, 2), cellOf(f, w, row, 3), "outlet row %d", row)
	}
	assert.Equal(t, cellOf(before, w, 0, 1), cellOf(f, w, 0, 1), "interior fluid cells are untouched")
	assert.Equal(t, cellOf(before, w, 2, 2), cellOf(f, w, 2, 2))

	solid := cellOf(f, w, 1, 2)
	streamed := cellOf(before, w, 1, 2)
	for i := 0; i < lattice.Q; i++ {
		assert.Equal(t, streamed[lattice.Opposite[i]], solid[i], "solid direction %s", lattice.Names[i])
	}
}

func TestBoundaryObstacleOverridesInletAndOutlet(t *testing.T) {
	const w, h = 4, 3
	mask := make([]bool, w*h)
	mask[0] = true       // row 0, inlet column
	mask[2*w+w-1] = true // row 2, outlet column

	f := randomPopulations(w*h, 37)
	before := append([]float64(nil), f...)
	NewBoundary(mask, w, h, 0.05, true).Apply(f)

	for _, cell := range [][2]int{{0, 0}, {2, w - 1}} {
		got := cellOf(f, w, cell[0], cell[1])
		streamed := cellOf(before, w, cell[0], cell[1])
		for i := 0; i < lattice.Q; i++ {
			assert.Equal(t, streamed[lattice.Opposite[i]], got[i], "cell %v direction %d", cell, i)
		}
	}
	assert.InDeltaSlice(t, inletEquilibrium(0.05), cellOf(f, w, 1, 0), 1e-15)
}

func TestBoundaryPeriodicOnlyBouncesBack(t *testing.T) {
	const w, h = 5, 4
	mask := make([]bool, w*h)
	mask[2*w+2] = true

	f := randomPopulations(w*h, 41)
	before := append([]float64(nil), f...)
	NewBoundary(mask, w, h, 0.1, false).Apply(f)

	for idx := 0; idx < w*h; idx++ {
		if mask[idx] {
			continue
		}
		assert.Equal(t, before[idx*lattice.Q:(idx+1)*lattice.Q], f[idx*lattice.Q:(idx+1)*lattice.Q], "cell %d", idx)
	}
	got := cellOf(f, w, 2, 2)
	assert.Equal(t, cellOf(before, w, 2, 2)[lattice.Opposite[1]], got[1])
}

func TestBoundaryBounceBackIsAnInvolution(t *testing.T) {
	const w, h = 3, 3
	mask := []bool{true, true, true, true, true, true, true, true, true}
	f := randomPopulations(w*h, 43)
	before := append([]float64(nil), f...)
	b := NewBoundary(mask, w, h, 0, false)
	b.Apply(f)
	b.Apply(f)
	assert.Equal(t, before, f)
}

func TestBoundaryOverrideInlet(t *testing.T) {
	const w, h = 3, 2
	rho := []float64{2, 2, 2, 2, 2, 2}
	ux := []float64{5, 5, 5, 5, 5, 5}
	uy := []float64{7, 7, 7, 7, 7, 7}

	NewBoundary(make([]bool, w*h), w, h, 0.04, false).OverrideInlet(rho, ux, uy)
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2}, rho, "periodic boxes have no inlet")

	b := NewBoundary(make([]bool, w*h), w, h, 0.04, true)
	b.OverrideInlet(rho, ux, uy)
	assert.Equal(t, []float64{1, 2, 2, 1, 2, 2}, rho)
	assert.Equal(t, []float64{0.04, 5, 5, 0.04, 5, 5}, ux)
	assert.Equal(t, []float64{0, 7, 7, 0, 7, 7}, uy)

	b.SetInletSpeed(0.02)
	assert.Equal(t, 0.02, b.InletSpeed())
	f := randomPopulations(w*h, 47)
	b.Apply(f)
	assert.InDeltaSlice(t, inletEquilibrium(0.02), cellOf(f, w, 1, 0), 1e-15)
}
