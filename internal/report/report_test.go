package report

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lbm2d/internal/core"
	"lbm2d/internal/sims/lbm"
)

func init() {
	core.SetLogger(nil)
}

func smallSimulator(t *testing.T) *lbm.Simulator {
	t.Helper()
	cfg := lbm.SizedConfig(48, 24)
	cfg.Debris.Count = 0
	cfg.Cylinder = lbm.Circle{X: 12, Y: 12, R: 3}
	s, err := lbm.New(cfg)
	require.NoError(t, err)
	return s
}

func TestRecorderSamplesEveryInterval(t *testing.T) {
	s := smallSimulator(t)
	rec := NewRecorder(5)
	require.NoError(t, rec.Start(t.TempDir()))

	require.NoError(t, s.Run(context.Background(), 20, rec.Observe))
	samples := rec.Samples()
	require.Len(t, samples, 4)
	for i, sm := range samples {
		assert.Equal(t, 5*(i+1), sm.Step)
		assert.Greater(t, sm.Mass, 0.0)
		assert.GreaterOrEqual(t, sm.MaxSpeed, sm.MeanSpeed)
		assert.LessOrEqual(t, sm.MinRho, sm.MaxRho)
	}
	assert.InDelta(t, 0, rec.MassDrift(), 0.05)

	rec.Stop()
	require.NoError(t, s.Run(context.Background(), 10, rec.Observe))
	assert.Len(t, rec.Samples(), 4, "stopped recorders ignore further steps")
}

func TestRecorderIgnoresStepsBeforeStart(t *testing.T) {
	s := smallSimulator(t)
	rec := NewRecorder(0)
	rec.Observe(s)
	assert.Empty(t, rec.Samples())
	assert.Zero(t, rec.MassDrift())

	_, err := rec.GeneratePlots(s)
	assert.Error(t, err, "no output directory yet")
}

func TestGeneratePlotsWritesPNGs(t *testing.T) {
	if testing.Short() {
		t.Skip("renders plots")
	}
	s := smallSimulator(t)
	dir := filepath.Join(t.TempDir(), "run")
	rec := NewRecorder(2)
	require.NoError(t, rec.Start(dir))
	require.NoError(t, s.Run(context.Background(), 10, rec.Observe))

	n, err := rec.GeneratePlots(s)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	for _, name := range []string{"mass.png", "speed.png", "profile.png", "speed_map.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteProfileRejectsBadColumn(t *testing.T) {
	s := smallSimulator(t)
	err := WriteProfile(filepath.Join(t.TempDir(), "p.png"), s, 48)
	assert.ErrorContains(t, err, "outside")
}

func TestFieldGridMasksSolids(t *testing.T) {
	g := newFieldGrid([]float64{0.1, 0.5, 0.3, 9}, []bool{false, false, false, true}, 2, 2)
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 0.1, g.Min())
	assert.Equal(t, 0.5, g.Max())
	assert.True(t, math.IsNaN(g.Z(1, 1)))
	assert.Equal(t, 0.3, g.Z(0, 1))
	assert.Equal(t, 1.0, g.X(1))

	flat := newFieldGrid([]float64{2, 2}, []bool{false, false}, 2, 1)
	assert.Greater(t, flat.Max(), flat.Min())
}
