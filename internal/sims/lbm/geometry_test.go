package lbm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleContainsBoundary(t *testing.T) {
	c := Circle{X: 10, Y: 5, R: 3}
	assert.True(t, c.Contains(10, 5))
	assert.True(t, c.Contains(13, 5), "points on the rim are solid")
	assert.True(t, c.Contains(10, 2))
	assert.False(t, c.Contains(14, 5))
	assert.False(t, c.Contains(13, 7))
}

func TestDebrisCirclesAreReproducible(t *testing.T) {
	d := DefaultConfig().Debris
	first := DebrisCircles(d)
	require.Len(t, first, 5)
	assert.Equal(t, first, DebrisCircles(d))

	for _, c := range first {
		assert.GreaterOrEqual(t, c.X, float64(d.MinX))
		assert.Less(t, c.X, float64(d.MaxX))
		assert.GreaterOrEqual(t, c.Y, float64(d.MinY))
		assert.Less(t, c.Y, float64(d.MaxY))
		assert.GreaterOrEqual(t, c.R, float64(d.MinRadius))
		assert.Less(t, c.R, float64(d.MaxRadius))
	}

	d.Seed = 7
	assert.NotEqual(t, first, DebrisCircles(d))

	d.Count = 0
	assert.Empty(t, DebrisCircles(d))
}

func TestSizedConfigSpreadsDebrisOnSmallGrids(t *testing.T) {
	for _, size := range [][2]int{{30, 15}, {12, 8}, {3, 3}, {150, 50}} {
		w, h := size[0], size[1]
		cfg := SizedConfig(w, h)
		require.NoError(t, cfg.Validate(), "%dx%d", w, h)

		d := cfg.Debris
		assert.Less(t, d.MinX, d.MaxX, "%dx%d columns", w, h)
		assert.Less(t, d.MinY, d.MaxY, "%dx%d rows", w, h)
		assert.LessOrEqual(t, d.MaxX, w)
		assert.LessOrEqual(t, d.MaxY, h)
	}

	circles := DebrisCircles(SizedConfig(30, 15).Debris)
	require.Len(t, circles, 5)
	centres := map[[2]float64]bool{}
	for _, c := range circles {
		assert.GreaterOrEqual(t, c.X, 10.0)
		assert.Less(t, c.X, 20.0)
		assert.GreaterOrEqual(t, c.Y, 3.0)
		assert.Less(t, c.Y, 12.0)
		centres[[2]float64{c.X, c.Y}] = true
	}
	assert.Greater(t, len(centres), 1, "debris must not stack on one cell")

	d := SizedConfig(150, 50).Debris
	assert.Equal(t, [4]int{50, 130, 10, 40}, [4]int{d.MinX, d.MaxX, d.MinY, d.MaxY})
}

func TestBuildMaskDefaultLayout(t *testing.T) {
	cfg := DefaultConfig()
	mask := BuildMask(cfg)
	require.Len(t, mask, 300*100)

	assert.True(t, mask[50*300+75], "cylinder centre")
	assert.True(t, mask[62*300+75], "cylinder rim")
	assert.False(t, mask[50*300+60], "left of the cylinder")
	for row := 0; row < cfg.Height; row++ {
		assert.False(t, mask[row*300], "inlet column row %d", row)
	}
	assert.Greater(t, countSolid(mask), 400)
}

func TestBuildMaskIsSymmetricForCentredCylinder(t *testing.T) {
	cfg := SizedConfig(60, 30)
	cfg.Debris.Count = 0
	cfg.Cylinder = Circle{X: 20, Y: 14.5, R: 6}
	mask := BuildMask(cfg)

	for row := 0; row < cfg.Height; row++ {
		for col := 0; col < cfg.Width; col++ {
			assert.Equal(t, mask[row*60+col], mask[(29-row)*60+col], "(%d, %d)", row, col)
		}
	}
}

func TestBuildMaskSolidPredicateAndExtras(t *testing.T) {
	cfg := SizedConfig(20, 10)
	cfg.Debris.Count = 0
	cfg.Cylinder.R = 0
	cfg.Extra = []Circle{{X: 10, Y: 5, R: 0}}
	cfg.Solid = func(col, row int) bool { return row == 0 || row == 9 }

	mask := BuildMask(cfg)
	assert.Equal(t, 2*20+1, countSolid(mask))
	assert.True(t, mask[5*20+10], "zero radius circle still marks its centre")
	assert.True(t, mask[9*20+3])
}

func TestNewRejectsSealedBoundaryColumns(t *testing.T) {
	for name, solid := range map[string]func(col, row int) bool{
		"inlet":  func(col, row int) bool { return col == 0 },
		"outlet": func(col, row int) bool { return col == 29 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := SizedConfig(30, 12)
			cfg.Debris.Count = 0
			cfg.Solid = solid

			sim, err := New(cfg)
			require.Error(t, err)
			assert.Nil(t, sim)
			assert.True(t, errors.Is(err, ErrConfiguration))
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "obstacles", cerr.Field)
			assert.Contains(t, cerr.Reason, name)
		})
	}
}

func TestPeriodicBoxAllowsSolidEdgeColumn(t *testing.T) {
	cfg := SizedConfig(30, 12)
	cfg.Debris.Count = 0
	cfg.Periodic = true
	cfg.Solid = func(col, row int) bool { return col == 0 }

	sim, err := New(cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sim.SolidCells(), 12)
}
