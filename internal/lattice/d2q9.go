// Package lattice holds the D2Q9 velocity set shared by the LBM kernels.
//
// Directions are numbered 0 rest, 1 E, 2 N, 3 W, 4 S, 5 NE, 6 NW, 7 SW, 8 SE.
// CY counts in the direction of increasing row index.
package lattice

// Q is the number of discrete velocities per cell.
const Q = 9

// SoundSpeedSq is the squared lattice speed of sound, c_s^2 = 1/3.
const SoundSpeedSq = 1.0 / 3.0

// W holds the quadrature weight of each direction. The weights sum to one.
var W = [Q]float64{
	4.0 / 9.0,
	1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0,
	1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
}

// CX and CY are the integer velocity components of each direction.
var (
	CX = [Q]int{0, 1, 0, -1, 0, 1, -1, -1, 1}
	CY = [Q]int{0, 0, 1, 0, -1, 1, 1, -1, -1}
)

// Opposite maps each direction to the one with the reversed velocity.
var Opposite = [Q]int{0, 3, 4, 1, 2, 7, 8, 5, 6}

// Names gives a short label per direction, used in diagnostics.
var Names = [Q]string{"rest", "E", "N", "W", "S", "NE", "NW", "SW", "SE"}
