package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"lbm2d/internal/sims/lbm"
)

var (
	massColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	maxColor     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	meanColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	profileColor = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	solidColor   = color.RGBA{R: 50, G: 50, B: 50, A: 255}
)

// GeneratePlots writes the history plots of the recorded samples and the
// field plots of s into the output directory. It returns the number of files
// written.
func (r *Recorder) GeneratePlots(s *lbm.Simulator) (int, error) {
	r.mu.Lock()
	dir := r.outputDir
	samples := append([]Sample(nil), r.samples...)
	r.mu.Unlock()

	if dir == "" {
		return 0, fmt.Errorf("no output directory configured")
	}

	count := 0
	if len(samples) > 0 {
		if err := writeMassPlot(filepath.Join(dir, "mass.png"), samples); err != nil {
			return count, err
		}
		count++
		if err := writeSpeedPlot(filepath.Join(dir, "speed.png"), samples); err != nil {
			return count, err
		}
		count++
	}
	if s == nil {
		return count, nil
	}
	size := s.Size()
	if err := WriteProfile(filepath.Join(dir, "profile.png"), s, size.W-2); err != nil {
		return count, err
	}
	count++
	if err := WriteSpeedMap(filepath.Join(dir, "speed_map.png"), s); err != nil {
		return count, err
	}
	count++
	return count, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, c color.Color) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

func writeMassPlot(path string, samples []Sample) error {
	p := newPlot("Total mass", "Step", "Mass")
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i] = plotter.XY{X: float64(s.Step), Y: s.Mass}
	}
	if err := addLine(p, "", pts, massColor); err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save mass plot: %w", err)
	}
	return nil
}

func writeSpeedPlot(path string, samples []Sample) error {
	p := newPlot("Fluid speed", "Step", "Speed (lattice units)")
	maxPts := make(plotter.XYs, len(samples))
	meanPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		maxPts[i] = plotter.XY{X: float64(s.Step), Y: s.MaxSpeed}
		meanPts[i] = plotter.XY{X: float64(s.Step), Y: s.MeanSpeed}
	}
	if err := addLine(p, "max", maxPts, maxColor); err != nil {
		return err
	}
	if err := addLine(p, "mean", meanPts, meanColor); err != nil {
		return err
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save speed plot: %w", err)
	}
	return nil
}

// WriteProfile plots the x-velocity along column col against the row index.
// Obstacle cells are left out.
func WriteProfile(path string, s *lbm.Simulator, col int) error {
	size := s.Size()
	if col < 0 || col >= size.W {
		return fmt.Errorf("profile column %d outside [0, %d)", col, size.W)
	}
	ux, _ := s.Velocity()
	mask := s.ObstacleMask()
	pts := make(plotter.XYs, 0, size.H)
	for row := 0; row < size.H; row++ {
		idx := size.Index(col, row)
		if mask[idx] {
			continue
		}
		pts = append(pts, plotter.XY{X: ux[idx], Y: float64(row)})
	}
	p := newPlot(fmt.Sprintf("Velocity profile at column %d, step %d", col, s.StepIndex()), "u_x", "Row")
	if len(pts) > 0 {
		if err := addLine(p, "", pts, profileColor); err != nil {
			return err
		}
	}
	if err := p.Save(5*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save profile plot: %w", err)
	}
	return nil
}

// WriteSpeedMap renders the speed field as a heat map with obstacles in grey.
func WriteSpeedMap(path string, s *lbm.Simulator) error {
	size := s.Size()
	ux, uy := s.Velocity()
	grid := newFieldGrid(lbm.Speed(nil, ux, uy), s.ObstacleMask(), size.W, size.H)

	hm := plotter.NewHeatMap(grid, palette.Heat(64, 1))
	hm.NaN = solidColor
	p := newPlot(fmt.Sprintf("Speed, step %d", s.StepIndex()), "Column", "Row")
	p.Add(hm)

	aspect := float64(size.W) / float64(size.H)
	height := 4 * vg.Inch
	if err := p.Save(vg.Length(aspect)*height, height, path); err != nil {
		return fmt.Errorf("save speed map: %w", err)
	}
	return nil
}

// fieldGrid adapts a row-major scalar field to plotter.GridXYZ. Masked cells
// read as NaN.
type fieldGrid struct {
	w, h     int
	values   []float64
	min, max float64
}

func newFieldGrid(values []float64, mask []bool, w, h int) *fieldGrid {
	g := &fieldGrid{w: w, h: h, values: make([]float64, len(values)), min: math.Inf(1), max: math.Inf(-1)}
	for i, v := range values {
		if mask[i] || math.IsNaN(v) {
			g.values[i] = math.NaN()
			continue
		}
		g.values[i] = v
		g.min = math.Min(g.min, v)
		g.max = math.Max(g.max, v)
	}
	if g.min > g.max {
		g.min, g.max = 0, 0
	}
	if g.min == g.max {
		g.max = g.min + 1e-12
	}
	return g
}

func (g *fieldGrid) Dims() (c, r int)   { return g.w, g.h }
func (g *fieldGrid) Z(c, r int) float64 { return g.values[r*g.w+c] }
func (g *fieldGrid) X(c int) float64    { return float64(c) }
func (g *fieldGrid) Y(r int) float64    { return float64(r) }
func (g *fieldGrid) Min() float64       { return g.min }
func (g *fieldGrid) Max() float64       { return g.max }
