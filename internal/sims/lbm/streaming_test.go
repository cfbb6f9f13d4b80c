package lbm

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lbm2d/internal/lattice"
)

func TestStreamMovesEachDirectionAlongItsVelocity(t *testing.T) {
	const w, h = 6, 5
	starts := [][2]int{{2, 3}, {0, 0}, {h - 1, w - 1}, {0, w - 1}}
	for _, start := range starts {
		for i := 0; i < lattice.Q; i++ {
			src := make([]float64, w*h*lattice.Q)
			dst := make([]float64, w*h*lattice.Q)
			row, col := start[0], start[1]
			src[(row*w+col)*lattice.Q+i] = 1

			Stream(dst, src, w, h)

			wantRow := ((row+lattice.CY[i])%h + h) % h
			wantCol := ((col+lattice.CX[i])%w + w) % w
			for idx, v := range dst {
				cell, dir := idx/lattice.Q, idx%lattice.Q
				if cell == wantRow*w+wantCol && dir == i {
					require.Equal(t, 1.0, v, "direction %s from (%d,%d)", lattice.Names[i], row, col)
					continue
				}
				require.Zero(t, v, "stray value at cell %d direction %d", cell, dir)
			}
		}
	}
}

func TestStreamIsAPermutation(t *testing.T) {
	const w, h = 9, 7
	src := randomPopulations(w*h, 21)
	dst := make([]float64, len(src))
	Stream(dst, src, w, h)

	a := append([]float64(nil), src...)
	b := append([]float64(nil), dst...)
	sort.Float64s(a)
	sort.Float64s(b)
	assert.Equal(t, a, b)
}

func TestStreamGridMatchesSerial(t *testing.T) {
	const w, h = 128, 64
	src := randomPopulations(w*h, 23)
	serial := make([]float64, len(src))
	parallel := make([]float64, len(src))
	Stream(serial, src, w, h)
	streamGrid(parallel, src, w, h, 8)
	assert.Equal(t, serial, parallel)
}

func TestStreamRejectsAliasedBuffers(t *testing.T) {
	buf := make([]float64, 2*2*lattice.Q)
	assert.Panics(t, func() { Stream(buf, buf, 2, 2) })
	assert.Panics(t, func() { Stream(buf, make([]float64, 3), 2, 2) })
}
