package lbm

import (
	"lbm2d/internal/core"
)

// Circle is a solid disc centred on column X, row Y.
type Circle struct {
	X, Y float64
	R    float64
}

// Contains reports whether the cell centre (col, row) lies inside the disc,
// boundary included.
func (c Circle) Contains(col, row int) bool {
	dx := float64(col) - c.X
	dy := float64(row) - c.Y
	return dx*dx+dy*dy <= c.R*c.R
}

// DebrisCircles expands the debris settings into circles. The same
// settings always yield the same circles.
func DebrisCircles(d DebrisConfig) []Circle {
	if d.Count <= 0 {
		return nil
	}
	rng := core.NewRNG(d.Seed)
	out := make([]Circle, 0, d.Count)
	for i := 0; i < d.Count; i++ {
		x := rng.IntRange(d.MinX, d.MaxX)
		y := rng.IntRange(d.MinY, d.MaxY)
		r := rng.IntRange(d.MinRadius, d.MaxRadius)
		out = append(out, Circle{X: float64(x), Y: float64(y), R: float64(r)})
	}
	return out
}

// Shapes lists every circle the configuration places: the main cylinder (when
// its radius is positive), the debris, then the explicit extras.
func (c Config) Shapes() []Circle {
	var shapes []Circle
	if c.Cylinder.R > 0 {
		shapes = append(shapes, c.Cylinder)
	}
	shapes = append(shapes, DebrisCircles(c.Debris)...)
	return append(shapes, c.Extra...)
}

// BuildMask rasterises the configured geometry into a row-major obstacle mask.
func BuildMask(c Config) []bool {
	size := core.Size{W: c.Width, H: c.Height}
	mask := make([]bool, size.Cells())
	for _, s := range c.Shapes() {
		if s.R < 0 {
			continue
		}
		x0, x1 := clampInt(int(s.X-s.R)-1, 0, c.Width-1), clampInt(int(s.X+s.R)+1, 0, c.Width-1)
		y0, y1 := clampInt(int(s.Y-s.R)-1, 0, c.Height-1), clampInt(int(s.Y+s.R)+1, 0, c.Height-1)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if s.Contains(x, y) {
					mask[size.Index(x, y)] = true
				}
			}
		}
	}
	if c.Solid != nil {
		for y := 0; y < c.Height; y++ {
			for x := 0; x < c.Width; x++ {
				if c.Solid(x, y) {
					mask[size.Index(x, y)] = true
				}
			}
		}
	}
	return mask
}

// checkOpenColumns rejects masks that seal the inlet or outlet column.
func checkOpenColumns(mask []bool, w, h int) error {
	for _, col := range []struct {
		name string
		x    int
	}{{"inlet", 0}, {"outlet", w - 1}} {
		open := false
		for y := 0; y < h; y++ {
			if !mask[y*w+col.x] {
				open = true
				break
			}
		}
		if !open {
			return configErrorf("obstacles", "geometry covers the entire %s column %d", col.name, col.x)
		}
	}
	return nil
}

func countSolid(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
