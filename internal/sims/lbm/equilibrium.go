package lbm

import (
	"fmt"

	"lbm2d/internal/lattice"
)

// EquilibriumCell writes the nine D2Q9 equilibrium populations for density
// rho and velocity (ux, uy) into dst[:9]:
//
//	f_eq_i = w_i rho (1 + 3 c_i.u + 4.5 (c_i.u)^2 - 1.5 u.u)
func EquilibriumCell(dst []float64, rho, ux, uy float64) {
	_ = dst[lattice.Q-1]
	usq := 1.5 * (ux*ux + uy*uy)
	for i := 0; i < lattice.Q; i++ {
		cu := float64(lattice.CX[i])*ux + float64(lattice.CY[i])*uy
		dst[i] = lattice.W[i] * rho * (1 + 3*cu + 4.5*cu*cu - usq)
	}
}

// Equilibrium fills dst with the equilibrium populations of len(rho) cells.
// It is shape agnostic: the whole grid, a row band and the inlet column all
// go through it. dst must hold 9*len(rho) values and ux, uy len(rho) each.
func Equilibrium(dst, rho, ux, uy []float64) {
	n := len(rho)
	if len(ux) != n || len(uy) != n || len(dst) != n*lattice.Q {
		panic(fmt.Sprintf("lbm: Equilibrium length mismatch: dst=%d rho=%d ux=%d uy=%d", len(dst), n, len(ux), len(uy)))
	}
	for c := 0; c < n; c++ {
		EquilibriumCell(dst[c*lattice.Q:(c+1)*lattice.Q], rho[c], ux[c], uy[c])
	}
}

// equilibriumGrid evaluates Equilibrium over a w x h grid in row bands.
func equilibriumGrid(dst, rho, ux, uy []float64, w, h, workers int) {
	parallelRows(h, w, workers, func(y0, y1 int) {
		a, b := y0*w, y1*w
		Equilibrium(dst[a*lattice.Q:b*lattice.Q], rho[a:b], ux[a:b], uy[a:b])
	})
}
