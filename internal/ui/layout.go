package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"lbm2d/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	statusHeight   = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)

// statusGroups are the snapshot groups listed under the controls.
var statusGroups = []string{"Flow", "Status"}

func buildTitle(name string) string {
	if name == "" {
		return "Controls"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " controls"
}

// adjustFloat moves value one step in direction and clamps it to the
// control bounds. ok is false when the value would not change.
func adjustFloat(ctrl core.ParameterControl, value float64, direction int) (target float64, ok bool) {
	if direction == 0 {
		return value, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	target = ctrl.Clamp(value + float64(direction)*step)
	if math.Abs(target-value) < 1e-9 {
		return value, false
	}
	return target, true
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// statusLines renders the listed snapshot groups as "Label: value" lines.
// Float values are shortened to four significant digits.
func statusLines(snap core.ParameterSnapshot, groups []string) []string {
	var lines []string
	for _, name := range groups {
		for _, g := range snap.Groups {
			if g.Name != name {
				continue
			}
			for _, p := range g.Params {
				value := p.Value
				if p.Type == core.ParamTypeFloat {
					if f, err := strconv.ParseFloat(p.Value, 64); err == nil {
						value = strconv.FormatFloat(f, 'g', 4, 64)
					}
				}
				lines = append(lines, p.Label+": "+value)
			}
		}
	}
	return lines
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// controlRects places the minus and plus buttons of control i in a panel of
// the given width.
func controlRects(i, width int) (top int, minus, plus image.Rectangle) {
	top = controlsTop + i*lineHeight
	buttonY := top + (lineHeight-buttonSize)/2
	plus = image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
	minus = image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
	return top, minus, plus
}

type vectorSample struct {
	cx float64
	cy float64
	sx float64
	sy float64
}

// vectorSamples spreads roughly 360 sample points evenly over a grid of the
// given size and returns them with the on-screen spacing between samples.
func vectorSamples(size core.Size, scale int) ([]vectorSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const (
		targetSamples = 360.0
		minSpacing    = 6
		maxSpacing    = 20
	)

	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	if spacing < minSpacing {
		spacing = minSpacing
	}
	if spacing > maxSpacing {
		spacing = maxSpacing
	}

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	samples := make([]vectorSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		cellY := min(startY+yi*spacing, size.H-1)
		cy := float64(cellY) + 0.5
		for xi := 0; xi < countX; xi++ {
			cellX := min(startX+xi*spacing, size.W-1)
			cx := float64(cellX) + 0.5
			samples = append(samples, vectorSample{cx: cx, cy: cy, sx: cx * float64(scale), sy: cy * float64(scale)})
		}
	}
	return samples, float64(spacing * scale)
}

func arrowColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// outlineMask marks solid cells with at least one fluid 4-neighbour.
func outlineMask(mask []bool, w, h int) []bool {
	out := make([]bool, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !mask[idx] {
				continue
			}
			if (x > 0 && !mask[idx-1]) || (x+1 < w && !mask[idx+1]) ||
				(y > 0 && !mask[idx-w]) || (y+1 < h && !mask[idx+w]) {
				out[idx] = true
			}
		}
	}
	return out
}
