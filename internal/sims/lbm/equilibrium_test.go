package lbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lbm2d/internal/core"
	"lbm2d/internal/lattice"
)

func TestEquilibriumAtRestReducesToWeights(t *testing.T) {
	for _, rho := range []float64{1e-3, 0.5, 1, 1.37, 42} {
		var feq [lattice.Q]float64
		EquilibriumCell(feq[:], rho, 0, 0)
		for i := 0; i < lattice.Q; i++ {
			assert.InDelta(t, lattice.W[i]*rho, feq[i], 1e-15*rho, "rho=%g direction %d", rho, i)
		}
	}
}

func TestEquilibriumRecoversMoments(t *testing.T) {
	rng := core.NewRNG(3)
	for k := 0; k < 200; k++ {
		rho := 0.5 + rng.Float64()
		ux := 0.2 * (rng.Float64() - 0.5)
		uy := 0.2 * (rng.Float64() - 0.5)
		var feq [lattice.Q]float64
		EquilibriumCell(feq[:], rho, ux, uy)

		var sum, mx, my float64
		for i := 0; i < lattice.Q; i++ {
			require.Greater(t, feq[i], 0.0, "equilibrium must stay positive at low Mach")
			sum += feq[i]
			mx += float64(lattice.CX[i]) * feq[i]
			my += float64(lattice.CY[i]) * feq[i]
		}
		require.InDelta(t, rho, sum, 1e-12)
		require.InDelta(t, rho*ux, mx, 1e-12)
		require.InDelta(t, rho*uy, my, 1e-12)
	}
}

func TestEquilibriumIsShapeAgnostic(t *testing.T) {
	const w, h = 5, 4
	rng := core.NewRNG(11)
	rho := make([]float64, w*h)
	ux := make([]float64, w*h)
	uy := make([]float64, w*h)
	for i := range rho {
		rho[i] = 0.9 + 0.2*rng.Float64()
		ux[i] = 0.1 * rng.Float64()
		uy[i] = 0.05 * (rng.Float64() - 0.5)
	}
	grid := make([]float64, w*h*lattice.Q)
	equilibriumGrid(grid, rho, ux, uy, w, h, 1)

	// Gather column 0 and evaluate it on its own, the way the inlet does.
	colRho, colUx, colUy := make([]float64, h), make([]float64, h), make([]float64, h)
	for y := 0; y < h; y++ {
		colRho[y], colUx[y], colUy[y] = rho[y*w], ux[y*w], uy[y*w]
	}
	col := make([]float64, h*lattice.Q)
	Equilibrium(col, colRho, colUx, colUy)

	for y := 0; y < h; y++ {
		assert.Equal(t, grid[y*w*lattice.Q:(y*w+1)*lattice.Q], col[y*lattice.Q:(y+1)*lattice.Q], "row %d", y)
	}
}

func TestEquilibriumLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		Equilibrium(make([]float64, 9), make([]float64, 2), make([]float64, 2), make([]float64, 2))
	})
}
