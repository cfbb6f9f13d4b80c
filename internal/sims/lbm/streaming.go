package lbm

import (
	"fmt"

	"lbm2d/internal/lattice"
)

// Stream propagates every population of src one lattice step along its
// velocity, with periodic wrap on both axes, and writes the result to dst.
// Every value is read from src, so dst must be a different buffer.
func Stream(dst, src []float64, w, h int) {
	checkStreamBuffers(dst, src, w, h)
	streamRows(dst, src, w, h, 0, h)
}

// streamGrid is Stream with the destination rows split across workers. Each
// worker pulls into its own rows only.
func streamGrid(dst, src []float64, w, h, workers int) {
	checkStreamBuffers(dst, src, w, h)
	parallelRows(h, w, workers, func(y0, y1 int) {
		streamRows(dst, src, w, h, y0, y1)
	})
}

// streamRows fills destination rows [y0, y1) by pulling each population
// from the upstream cell (row - cy, col - cx).
func streamRows(dst, src []float64, w, h, y0, y1 int) {
	const q = lattice.Q
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			out := (y*w + x) * q
			dst[out] = src[out]
			for i := 1; i < q; i++ {
				sx := x - lattice.CX[i]
				if sx < 0 {
					sx += w
				} else if sx >= w {
					sx -= w
				}
				sy := y - lattice.CY[i]
				if sy < 0 {
					sy += h
				} else if sy >= h {
					sy -= h
				}
				dst[out+i] = src[(sy*w+sx)*q+i]
			}
		}
	}
}

func checkStreamBuffers(dst, src []float64, w, h int) {
	want := w * h * lattice.Q
	if len(dst) != want || len(src) != want {
		panic(fmt.Sprintf("lbm: Stream buffers hold %d and %d values, want %d", len(dst), len(src), want))
	}
	if want > 0 && &dst[0] == &src[0] {
		panic("lbm: Stream source and destination alias")
	}
}
