package lbm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TotalMass sums the density field.
func TotalMass(rho []float64) float64 {
	return floats.Sum(rho)
}

// Speed writes |u| per cell into dst, allocating when dst is too short.
func Speed(dst, ux, uy []float64) []float64 {
	if len(dst) < len(ux) {
		dst = make([]float64, len(ux))
	}
	dst = dst[:len(ux)]
	for i := range ux {
		dst[i] = math.Hypot(ux[i], uy[i])
	}
	return dst
}

// MaxFluidSpeed returns the largest speed over cells not marked in mask and
// the index of that cell, or -1 when every cell is solid.
func MaxFluidSpeed(ux, uy []float64, mask []bool) (float64, int) {
	speed := Speed(nil, ux, uy)
	for i, solid := range mask {
		if solid {
			speed[i] = math.Inf(-1)
		}
	}
	if len(speed) == 0 {
		return 0, -1
	}
	idx := floats.MaxIdx(speed)
	if math.IsInf(speed[idx], -1) {
		return 0, -1
	}
	return speed[idx], idx
}

// Vorticity writes the curl du_y/dx - du_x/dy of a w x h velocity field into
// dst using central differences, one-sided on the grid edges. It is a derived
// diagnostic for reports and viewers; the solver never reads it.
func Vorticity(dst, ux, uy []float64, w, h int) []float64 {
	n := w * h
	if len(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst[y*w+x] = gradient(uy, y*w, 1, x, w) - gradient(ux, x, w, y, h)
		}
	}
	return dst
}

// gradient differentiates field along one axis at position pos of an axis of
// length n, where element k of the axis lives at base + k*stride.
func gradient(field []float64, base, stride, pos, n int) float64 {
	switch {
	case n < 2:
		return 0
	case pos == 0:
		return field[base+stride] - field[base]
	case pos == n-1:
		return field[base+pos*stride] - field[base+(pos-1)*stride]
	default:
		return 0.5 * (field[base+(pos+1)*stride] - field[base+(pos-1)*stride])
	}
}

// Summary condenses one step of a run.
type Summary struct {
	Step      int
	Mass      float64
	MinRho    float64
	MaxRho    float64
	MeanSpeed float64
	StdSpeed  float64
	MaxSpeed  float64
}

// Summarize computes the summary statistics of the current state. Speed
// statistics cover fluid cells only; the spread of a single cell is zero.
func (s *Simulator) Summarize() Summary {
	rho, ux, uy := s.state.Moments()
	speed := make([]float64, 0, len(rho)-s.solid)
	for i := range rho {
		if s.mask[i] {
			continue
		}
		speed = append(speed, math.Hypot(ux[i], uy[i]))
	}
	sum := Summary{
		Step:   s.step,
		Mass:   TotalMass(rho),
		MinRho: floats.Min(rho),
		MaxRho: floats.Max(rho),
	}
	switch {
	case len(speed) == 1:
		sum.MeanSpeed, sum.MaxSpeed = speed[0], speed[0]
	case len(speed) > 1:
		sum.MeanSpeed, sum.StdSpeed = stat.MeanStdDev(speed, nil)
		sum.MaxSpeed = floats.Max(speed)
	}
	return sum
}
