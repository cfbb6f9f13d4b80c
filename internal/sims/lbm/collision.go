package lbm

import (
	"fmt"

	"lbm2d/internal/lattice"
)

// Collide relaxes f toward feq in place with the BGK rule
// f_i <- f_i - omega (f_i - feq_i). Cells whose entry in skip is true keep
// their populations; a nil skip relaxes every cell. Each relaxed cell keeps
// its density because the equilibrium carries the same zeroth moment.
func Collide(f, feq []float64, omega float64, skip []bool) {
	if len(f) != len(feq) || len(f)%lattice.Q != 0 {
		panic(fmt.Sprintf("lbm: Collide length mismatch: f=%d feq=%d", len(f), len(feq)))
	}
	n := len(f) / lattice.Q
	if skip != nil && len(skip) != n {
		panic(fmt.Sprintf("lbm: Collide mask covers %d cells, want %d", len(skip), n))
	}
	for c := 0; c < n; c++ {
		if skip != nil && skip[c] {
			continue
		}
		base := c * lattice.Q
		for i := 0; i < lattice.Q; i++ {
			f[base+i] -= omega * (f[base+i] - feq[base+i])
		}
	}
}

// collideGrid applies Collide over a w x h grid in row bands.
func collideGrid(f, feq []float64, omega float64, skip []bool, w, h, workers int) {
	parallelRows(h, w, workers, func(y0, y1 int) {
		a, b := y0*w, y1*w
		var band []bool
		if skip != nil {
			band = skip[a:b]
		}
		Collide(f[a*lattice.Q:b*lattice.Q], feq[a*lattice.Q:b*lattice.Q], omega, band)
	})
}
